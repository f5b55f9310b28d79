// Package bot wires the feature pipeline and command router to the
// transport event stream.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guard_bot/internal/capture"
	"guard_bot/internal/model"
	"guard_bot/internal/notify"
	"guard_bot/internal/pipeline"
	"guard_bot/internal/router"
	"guard_bot/internal/storage"
	"guard_bot/internal/transport"
)

const timeFormat = "02/01/2006 15:04:05"

// Bot consumes the inbound event stream one event at a time and drives the
// passive pipeline, anti-delete capture, membership greetings, and the
// command router.
type Bot struct {
	client   transport.Client
	store    storage.Storage
	capture  *capture.Capture
	pipeline *pipeline.Pipeline
	router   *router.Router
	relay    *notify.Relay
	prefix   string
	log      *slog.Logger
}

// New creates a Bot.
func New(client transport.Client, store storage.Storage, cap *capture.Capture, pipe *pipeline.Pipeline, rt *router.Router, relay *notify.Relay, prefix string, log *slog.Logger) *Bot {
	return &Bot{
		client:   client,
		store:    store,
		capture:  cap,
		pipeline: pipe,
		router:   rt,
		relay:    relay,
		prefix:   prefix,
		log:      log,
	}
}

// Run consumes events until ctx is cancelled or the stream closes. A
// startup notification is sent to the owner address first, best-effort.
func (b *Bot) Run(ctx context.Context) {
	b.relay.Text(ctx, fmt.Sprintf(
		"Bot connected and ready.\nStarted at: %s\nType %ssetup for the first-time guide, %smenu for commands.\nAll features start as OFF.",
		time.Now().Format(timeFormat), b.prefix, b.prefix))

	events := b.client.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				b.log.Info("event stream closed")
				return
			}
			b.handle(ctx, ev)
		}
	}
}

func (b *Bot) handle(ctx context.Context, ev model.Event) {
	if ev.FromSelf {
		return
	}

	if ev.ScopeID == transport.StatusBroadcast || ev.Kind == model.EventStatus {
		b.pipeline.ApplyStatus(ctx, ev)
		return
	}

	switch ev.Kind {
	case model.EventDeletion:
		b.handleDeletion(ctx, ev)
		return
	case model.EventMembership:
		b.handleMembership(ctx, ev)
		return
	}

	if consumed := b.pipeline.Apply(ctx, ev); consumed {
		return
	}

	if strings.HasPrefix(strings.TrimSpace(ev.Text), b.prefix) {
		b.router.Dispatch(ctx, ev)
	}
}

// handleDeletion captures a deleted message and alerts the group and the
// owner. Gated by the scope's antiDelete flag.
func (b *Bot) handleDeletion(ctx context.Context, ev model.Event) {
	settings, err := b.store.GetSettings(ctx, ev.ScopeID)
	if err != nil {
		b.log.Error("load settings", "scope", ev.ScopeID, "error", err)
		return
	}
	if !settings.AntiDelete || ev.Original == nil {
		return
	}

	a := b.capture.DeletedMessage(ctx, ev.ScopeID, ev.SenderID, *ev.Original)

	alert := transport.Text(fmt.Sprintf(
		"Anti-Delete Alert\nSender: @%s\nDeleted at: %s\nMessage: %s",
		shortID(a.SenderID), a.CapturedAt.Format(timeFormat), a.TextSummary))
	alert.Mentions = []string{a.SenderID}
	if err := b.client.Send(ctx, ev.ScopeID, alert); err != nil {
		b.log.Warn("send anti-delete alert", "scope", ev.ScopeID, "error", err)
	}

	b.relay.Text(ctx, fmt.Sprintf(
		"Deleted message report\nSender: %s\nScope: %s\nContent: %s",
		shortID(a.SenderID), shortID(ev.ScopeID), a.TextSummary))
}

// handleMembership greets newly added participants.
func (b *Bot) handleMembership(ctx context.Context, ev model.Event) {
	mc := ev.Membership
	if mc == nil || mc.Action != "add" {
		return
	}
	for _, participant := range mc.Participants {
		welcome := transport.Text(fmt.Sprintf(
			"Welcome @%s!\nType %smenu for bot commands.", shortID(participant), b.prefix))
		welcome.Mentions = []string{participant}
		if err := b.client.Send(ctx, ev.ScopeID, welcome); err != nil {
			b.log.Warn("send welcome", "scope", ev.ScopeID, "error", err)
		}
	}
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '@'); i > 0 {
		return id[:i]
	}
	return id
}
