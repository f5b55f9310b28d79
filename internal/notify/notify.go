// Package notify forwards capture reports to the bot owner, best-effort.
package notify

import (
	"context"
	"log/slog"

	"guard_bot/internal/model"
	"guard_bot/internal/transport"
)

// Relay sends owner notifications. Delivery failures are swallowed after a
// log line; a notification never blocks or fails the path that produced it.
type Relay struct {
	client transport.Client
	owner  string
	log    *slog.Logger
}

// New creates a Relay. When owner is empty, the transport's own account id
// is used as the destination.
func New(client transport.Client, owner string, log *slog.Logger) *Relay {
	return &Relay{client: client, owner: owner, log: log}
}

// Owner returns the notification destination address.
func (r *Relay) Owner() string {
	if r.owner != "" {
		return r.owner
	}
	return r.client.SelfID()
}

// Text forwards a text report to the owner.
func (r *Relay) Text(ctx context.Context, text string) {
	dest := r.Owner()
	if dest == "" {
		return
	}
	if err := r.client.Send(ctx, dest, transport.Text(text)); err != nil {
		r.log.Warn("owner notification failed", "error", err)
	}
}

// Media forwards a media copy with a caption to the owner.
func (r *Relay) Media(ctx context.Context, kind model.MediaKind, data []byte, caption string) {
	dest := r.Owner()
	if dest == "" {
		return
	}
	if err := r.client.Send(ctx, dest, transport.Media(kind, data, caption)); err != nil {
		r.log.Warn("owner media notification failed", "error", err)
	}
}
