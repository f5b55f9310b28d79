// Package transport declares the messaging-client collaborator consumed by
// the bot. The wire protocol, pairing and encryption live in the external
// client; this package only names the surface the engine depends on.
package transport

import (
	"context"
	"strings"

	"guard_bot/internal/model"
)

// StatusBroadcast is the destination scope id of status updates.
const StatusBroadcast = "status@broadcast"

// ContentKind discriminates outbound content.
type ContentKind string

// Supported outbound content kinds.
const (
	ContentText     ContentKind = "text"
	ContentMedia    ContentKind = "media"
	ContentReaction ContentKind = "reaction"
)

// Content is one outbound payload: plain text, media with a caption, or a
// reaction on an existing message.
type Content struct {
	Kind      ContentKind
	Text      string
	Media     []byte
	MediaKind model.MediaKind
	Caption   string
	Emoji     string
	ReactTo   model.EventKey
	QuoteID   string
	Mentions  []string
}

// Text builds a plain text payload.
func Text(s string) Content {
	return Content{Kind: ContentText, Text: s}
}

// Media builds a media payload with an attribution caption.
func Media(kind model.MediaKind, data []byte, caption string) Content {
	return Content{Kind: ContentMedia, MediaKind: kind, Media: data, Caption: caption}
}

// Reaction builds an emoji reaction on the message identified by key.
func Reaction(emoji string, key model.EventKey) Content {
	return Content{Kind: ContentReaction, Emoji: emoji, ReactTo: key}
}

// Participant is one group member as reported by the transport.
type Participant struct {
	ID      string
	IsAdmin bool
}

// GroupInfo is the group metadata the engine needs for authorization.
type GroupInfo struct {
	ID           string
	Participants []Participant
}

// Client is the messaging transport the bot runs against.
type Client interface {
	// Events returns the inbound event stream. The channel is closed when
	// the underlying connection shuts down.
	Events() <-chan model.Event

	// Send delivers content to the given scope.
	Send(ctx context.Context, scopeID string, c Content) error

	// DownloadMedia fetches the media bytes of an event.
	DownloadMedia(ctx context.Context, ev model.Event) ([]byte, error)

	// MarkRead marks the given messages as read.
	MarkRead(ctx context.Context, keys []model.EventKey) error

	// GroupMetadata returns membership info for a group scope.
	GroupMetadata(ctx context.Context, scopeID string) (GroupInfo, error)

	// SelfID is the account id of the connected session.
	SelfID() string
}

// IsGroup reports whether a scope id addresses a group conversation.
func IsGroup(scopeID string) bool {
	return strings.HasSuffix(scopeID, "@g.us")
}
