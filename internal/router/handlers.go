package router

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"guard_bot/internal/model"
	"guard_bot/internal/transport"
)

const timeFormat = "02/01/2006 15:04:05"

func (r *Router) handleMenu(ctx context.Context, req Request) error {
	r.reply(ctx, req.Scope, r.formatMenu())
	return nil
}

func (r *Router) handlePing(ctx context.Context, req Request) error {
	now := time.Now().In(r.loc)
	r.reply(ctx, req.Scope, fmt.Sprintf("Pong!\nBot is active and running.\nDate: %s\nTime: %s",
		now.Format("02/01/2006"), now.Format("15:04:05")))
	return nil
}

func (r *Router) handleInfo(ctx context.Context, req Request) error {
	r.reply(ctx, req.Scope, fmt.Sprintf(`Bot information

Commands: %d
Prefix: %s
Uptime: %s

Features: anti-delete, anti-link, auto reactions, view-once capture, status saver.
All captured data is removed automatically after 24 hours.`,
		len(r.commands), r.prefix, time.Since(r.startedAt).Round(time.Second)))
	return nil
}

func (r *Router) handleTime(ctx context.Context, req Request) error {
	now := time.Now().In(r.loc)
	r.reply(ctx, req.Scope, fmt.Sprintf("Date: %s\nTime: %s\nTimezone: %s",
		now.Format("02/01/2006"), now.Format("15:04:05"), r.loc.String()))
	return nil
}

func (r *Router) handleQuote(ctx context.Context, req Request) error {
	r.reply(ctx, req.Scope, fmt.Sprintf("%q\n\nStay motivated!", quotes[rand.Intn(len(quotes))]))
	return nil
}

func (r *Router) handleJoke(ctx context.Context, req Request) error {
	r.reply(ctx, req.Scope, jokes[rand.Intn(len(jokes))])
	return nil
}

func (r *Router) handleCalc(ctx context.Context, req Request) error {
	if req.RawArgs == "" {
		r.reply(ctx, req.Scope, fmt.Sprintf(
			"Please provide an expression.\nUsage: %scalc 2+2\nSupported: + - * / %% ( ) and sqrt", r.prefix))
		return nil
	}
	result, err := Evaluate(req.RawArgs)
	if err != nil {
		r.reply(ctx, req.Scope, fmt.Sprintf(
			"Invalid expression: %s\nPlease check your syntax.\nExample: %scalc 10 + 5 * 2", req.RawArgs, r.prefix))
		return nil
	}
	r.reply(ctx, req.Scope, fmt.Sprintf("Expression: %s\nResult: %s", req.RawArgs, formatNumber(result)))
	return nil
}

// toggleHandler builds an on/off handler for a per-group feature flag.
func (r *Router) toggleHandler(label string, patch func(bool) model.SettingsPatch) Handler {
	return func(ctx context.Context, req Request) error {
		if !transport.IsGroup(req.Scope) {
			r.reply(ctx, req.Scope, "This command only works in groups.")
			return nil
		}
		return r.applyToggle(ctx, req, req.Scope, label, patch)
	}
}

// globalToggleHandler builds an on/off handler for an account-wide flag.
func (r *Router) globalToggleHandler(label string, patch func(bool) model.SettingsPatch) Handler {
	return func(ctx context.Context, req Request) error {
		return r.applyToggle(ctx, req, model.GlobalScope, label, patch)
	}
}

func (r *Router) applyToggle(ctx context.Context, req Request, scopeID, label string, patch func(bool) model.SettingsPatch) error {
	enabled, ok := parseOnOff(req.Args)
	if !ok {
		name := strings.ToLower(strings.NewReplacer(" ", "", "-", "").Replace(label))
		r.reply(ctx, req.Scope, fmt.Sprintf("Usage: %s%s on/off", r.prefix, name))
		return nil
	}
	if _, err := r.store.UpdateSettings(ctx, scopeID, patch(enabled)); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	r.reply(ctx, req.Scope, fmt.Sprintf("%s %s.", label, state))
	return nil
}

func (r *Router) handleCustomEmoji(ctx context.Context, req Request) error {
	if !transport.IsGroup(req.Scope) {
		r.reply(ctx, req.Scope, "This command only works in groups.")
		return nil
	}
	return r.applyEmoji(ctx, req, req.Scope, "Custom reaction emoji", func(v string) model.SettingsPatch {
		return model.SettingsPatch{CustomReactEmoji: model.String(v)}
	})
}

func (r *Router) handleStatusReactEmoji(ctx context.Context, req Request) error {
	return r.applyEmoji(ctx, req, model.GlobalScope, "Status reaction emoji", func(v string) model.SettingsPatch {
		return model.SettingsPatch{StatusReactEmoji: model.String(v)}
	})
}

func (r *Router) applyEmoji(ctx context.Context, req Request, scopeID, label string, patch func(string) model.SettingsPatch) error {
	if len(req.Args) == 0 {
		r.reply(ctx, req.Scope, fmt.Sprintf("Usage: provide an emoji, or reset to clear.\nExample: %scustomemoji 🖤", r.prefix))
		return nil
	}
	arg := req.Args[0]
	switch strings.ToLower(arg) {
	case "reset", "remove", "clear":
		if _, err := r.store.UpdateSettings(ctx, scopeID, patch("")); err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
		r.reply(ctx, req.Scope, fmt.Sprintf("%s removed. Random emojis will be used.", label))
		return nil
	}
	if _, err := r.store.UpdateSettings(ctx, scopeID, patch(arg)); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	r.reply(ctx, req.Scope, fmt.Sprintf("%s set to %s.", label, arg))
	return nil
}

func (r *Router) handleSettings(ctx context.Context, req Request) error {
	scoped, err := r.store.GetSettings(ctx, req.Scope)
	if err != nil {
		return fmt.Errorf("get scope settings: %w", err)
	}
	global, err := r.store.GetSettings(ctx, model.GlobalScope)
	if err != nil {
		return fmt.Errorf("get global settings: %w", err)
	}
	r.reply(ctx, req.Scope, formatSettings(req.Scope, scoped, global, r.prefix))
	return nil
}

func (r *Router) handleSession(ctx context.Context, req Request) error {
	r.reply(ctx, req.Scope, fmt.Sprintf(`Session information

Bot account: %s
Owner address: %s
Started at: %s
Uptime: %s
Status: online`,
		orUnknown(r.client.SelfID()), orUnknown(r.ownerAddress()),
		r.startedAt.In(r.loc).Format(timeFormat), time.Since(r.startedAt).Round(time.Second)))
	return nil
}

func (r *Router) handleSetup(ctx context.Context, req Request) error {
	r.reply(ctx, req.Scope, fmt.Sprintf(`First-time setup

All features start as OFF for privacy.

Quick start:
- %ssettings — view feature settings
- %santidelete on — capture deleted messages (per group)
- %sautoreact on — emotion-based reactions (per group)
- %sautoviewstatus on — auto-view statuses (global)
- %ssavestatus on — save statuses (global)

Group settings need group-admin rights; global settings need the owner.
Captured data is removed automatically after 24 hours.`,
		r.prefix, r.prefix, r.prefix, r.prefix, r.prefix))
	return nil
}

func (r *Router) handleCleanup(ctx context.Context, req Request) error {
	res, err := r.sweeper.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("manual sweep: %w", err)
	}
	if res.Skipped {
		r.reply(ctx, req.Scope, "A cleanup is already running.")
		return nil
	}
	r.reply(ctx, req.Scope, fmt.Sprintf(
		"Cleanup completed.\nRecords removed: %d\nFiles removed: %d\nBytes freed: %d",
		res.ItemsRemoved, res.FilesRemoved, res.BytesFreed))
	return nil
}

func (r *Router) handleCleanupStats(ctx context.Context, req Request) error {
	stats := r.sweeper.Stats()
	counts, err := r.store.CountArtifacts(ctx)
	if err != nil {
		return fmt.Errorf("count artifacts: %w", err)
	}

	last := "never"
	if !stats.LastSweep.IsZero() {
		last = stats.LastSweep.In(r.loc).Format(timeFormat)
	}
	r.reply(ctx, req.Scope, fmt.Sprintf(`Cleanup statistics

Deleted messages stored: %d
Saved statuses stored: %d
View-once items stored: %d

Sweeps run: %d
Records removed: %d
Files removed: %d
Last sweep: %s

Data older than 24 hours is removed automatically every hour.`,
		counts[model.ArtifactDeletedMessage],
		counts[model.ArtifactSavedStatus],
		counts[model.ArtifactViewOnceImage]+counts[model.ArtifactViewOnceVideo],
		stats.Sweeps, stats.ItemsRemoved, stats.FilesRemoved, last))
	return nil
}

func (r *Router) handleOwnerReact(ctx context.Context, req Request) error {
	emoji := "👑"
	if len(req.Args) > 0 {
		emoji = req.Args[0]
	}
	if err := r.client.Send(ctx, req.Scope, transport.Reaction(emoji, req.Event.Key())); err != nil {
		return fmt.Errorf("send reaction: %w", err)
	}
	r.reply(ctx, req.Scope, fmt.Sprintf("Reacted with %s", emoji))
	return nil
}

func (r *Router) handleViewStatus(ctx context.Context, req Request) error {
	recent, err := r.capture.ListRecent(ctx, model.ArtifactSavedStatus, 10)
	if err != nil {
		return fmt.Errorf("list saved statuses: %w", err)
	}
	if len(recent) == 0 {
		r.reply(ctx, req.Scope, "No statuses saved yet.")
		return nil
	}

	var b strings.Builder
	b.WriteString("Recent saved statuses:\n")
	for _, a := range recent {
		fmt.Fprintf(&b, "- %s  %s", shortID(a.SenderID), a.CapturedAt.In(r.loc).Format("02/01 15:04"))
		if a.TextSummary != "" {
			fmt.Fprintf(&b, "  %s", truncate(a.TextSummary, 40))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal shown: %d", len(recent))
	r.reply(ctx, req.Scope, b.String())
	return nil
}

func (r *Router) ownerAddress() string {
	if r.ownerID != "" {
		return r.ownerID
	}
	return r.client.SelfID()
}

func parseOnOff(args []string) (bool, bool) {
	if len(args) == 0 {
		return false, false
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '@'); i > 0 {
		return id[:i]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
