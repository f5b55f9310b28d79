// Package pipeline applies the passive feature handlers to inbound events:
// view-once capture, anti-link, auto reactions, and the status sub-pipeline.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guard_bot/internal/capture"
	"guard_bot/internal/model"
	"guard_bot/internal/notify"
	"guard_bot/internal/storage"
	"guard_bot/internal/transport"
)

const timeFormat = "02/01/2006 15:04:05"

// Pipeline runs the ordered passive stages over non-command events. All
// stage failures are logged and swallowed: a broken feature never interrupts
// event processing.
type Pipeline struct {
	client  transport.Client
	store   storage.Storage
	capture *capture.Capture
	relay   *notify.Relay
	ownerID string
	prefix  string
	log     *slog.Logger
}

// New creates a Pipeline.
func New(client transport.Client, store storage.Storage, cap *capture.Capture, relay *notify.Relay, ownerID, prefix string, log *slog.Logger) *Pipeline {
	return &Pipeline{
		client:  client,
		store:   store,
		capture: cap,
		relay:   relay,
		ownerID: ownerID,
		prefix:  prefix,
		log:     log,
	}
}

// Apply runs the fixed stage order on a regular inbound event and reports
// whether the event was consumed (no further processing, including command
// parsing, may run).
func (p *Pipeline) Apply(ctx context.Context, ev model.Event) bool {
	settings, err := p.store.GetSettings(ctx, ev.ScopeID)
	if err != nil {
		p.log.Error("load scope settings", "scope", ev.ScopeID, "error", err)
		settings = model.ScopeSettings{}
	}

	p.handleViewOnce(ctx, ev, settings)

	if p.handleAntiLink(ctx, ev, settings) {
		return true
	}

	if !strings.HasPrefix(strings.TrimSpace(ev.Text), p.prefix) {
		p.handleReaction(ctx, ev, settings)
	}
	return false
}

func (p *Pipeline) handleViewOnce(ctx context.Context, ev model.Event, settings model.ScopeSettings) {
	if !ev.ViewOnce || !settings.AntiViewOnce {
		return
	}
	if ev.MediaKind != model.MediaImage && ev.MediaKind != model.MediaVideo {
		return
	}

	media, err := p.client.DownloadMedia(ctx, ev)
	if err != nil {
		p.log.Error("download view-once media", "scope", ev.ScopeID, "error", err)
		return
	}

	if _, ok := p.capture.ViewOnce(ctx, ev.ScopeID, ev.SenderID, media, ev.MediaKind); !ok {
		return
	}

	caption := fmt.Sprintf("Saved view-once %s from @%s at %s",
		ev.MediaKind, shortID(ev.SenderID), time.Now().Format(timeFormat))
	rebroadcast := transport.Media(ev.MediaKind, media, caption)
	rebroadcast.Mentions = []string{ev.SenderID}
	if err := p.client.Send(ctx, ev.ScopeID, rebroadcast); err != nil {
		p.log.Warn("rebroadcast view-once", "scope", ev.ScopeID, "error", err)
	}

	p.relay.Media(ctx, ev.MediaKind, media,
		fmt.Sprintf("View-once %s saved\nSender: %s\nScope: %s", ev.MediaKind, shortID(ev.SenderID), shortID(ev.ScopeID)))
}

func (p *Pipeline) handleAntiLink(ctx context.Context, ev model.Event, settings model.ScopeSettings) bool {
	if !settings.AntiLink || !transport.IsGroup(ev.ScopeID) {
		return false
	}
	link, found := DetectLink(ev.Summary())
	if !found {
		return false
	}

	warning := transport.Text(fmt.Sprintf(
		"Links are not allowed in this group!\nDetected: %s\nPlease remove the link or contact an admin.", link))
	warning.QuoteID = ev.ID
	if err := p.client.Send(ctx, ev.ScopeID, warning); err != nil {
		p.log.Warn("send anti-link warning", "scope", ev.ScopeID, "error", err)
	}
	return true
}

func (p *Pipeline) handleReaction(ctx context.Context, ev model.Event, settings model.ScopeSettings) {
	var emoji string
	switch {
	case p.ownerID != "" && ev.SenderID == p.ownerID:
		emoji = OwnerEmoji()
	case settings.AutoReact:
		if e, ok := ClassifyEmotion(ev.Summary()); ok {
			emoji = EmotionEmoji(e)
		} else if settings.CustomReactEmoji != "" {
			emoji = settings.CustomReactEmoji
		} else {
			emoji = DecentEmoji()
		}
	default:
		return
	}

	if err := p.client.Send(ctx, ev.ScopeID, transport.Reaction(emoji, ev.Key())); err != nil {
		p.log.Warn("auto react", "scope", ev.ScopeID, "error", err)
	}
}

// ApplyStatus runs the status sub-pipeline on a status-broadcast event. The
// three stages are independent: none short-circuits another.
func (p *Pipeline) ApplyStatus(ctx context.Context, ev model.Event) {
	settings, err := p.store.GetSettings(ctx, model.GlobalScope)
	if err != nil {
		p.log.Error("load global settings", "error", err)
		return
	}

	if settings.AutoViewStatus {
		p.autoViewStatus(ctx, ev)
	}
	if settings.AutoStatusReact {
		p.autoStatusReact(ctx, ev, settings)
	}
	if settings.SaveStatus {
		p.saveStatus(ctx, ev)
	}
}

func (p *Pipeline) autoViewStatus(ctx context.Context, ev model.Event) {
	if err := p.client.MarkRead(ctx, []model.EventKey{ev.Key()}); err != nil {
		p.log.Warn("auto view status", "sender", ev.SenderID, "error", err)
		return
	}
	p.relay.Text(ctx, fmt.Sprintf("Auto-viewed status\nUser: %s\nContent: %s\nTime: %s",
		shortID(ev.SenderID), ev.Summary(), time.Now().Format(timeFormat)))
}

func (p *Pipeline) autoStatusReact(ctx context.Context, ev model.Event, settings model.ScopeSettings) {
	emoji := settings.StatusReactEmoji
	if emoji == "" {
		emoji = DecentEmoji()
	}
	if err := p.client.Send(ctx, ev.ScopeID, transport.Reaction(emoji, ev.Key())); err != nil {
		p.log.Warn("auto status react", "sender", ev.SenderID, "error", err)
	}
}

func (p *Pipeline) saveStatus(ctx context.Context, ev model.Event) {
	var media []byte
	if ev.MediaKind == model.MediaImage || ev.MediaKind == model.MediaVideo {
		data, err := p.client.DownloadMedia(ctx, ev)
		if err != nil {
			p.log.Warn("download status media", "sender", ev.SenderID, "error", err)
		} else {
			media = data
		}
	}

	a := p.capture.Status(ctx, ev.SenderID, ev, media)

	file := "text only"
	if a.MediaRef != "" {
		file = a.MediaRef
	}
	p.relay.Text(ctx, fmt.Sprintf("Status saved\nUser: %s\nContent: %s\nFile: %s",
		shortID(ev.SenderID), a.TextSummary, file))
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '@'); i > 0 {
		return id[:i]
	}
	return id
}
