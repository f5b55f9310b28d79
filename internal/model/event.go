package model

import "time"

// EventKind discriminates the inbound event union.
type EventKind string

// Observed event kinds on the inbound stream.
const (
	EventText       EventKind = "text"
	EventImage      EventKind = "image"
	EventVideo      EventKind = "video"
	EventStatus     EventKind = "status"
	EventDeletion   EventKind = "deletion"
	EventMembership EventKind = "membership"
)

// MediaKind distinguishes media payloads.
type MediaKind string

// Supported media kinds.
const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// EventKey identifies a message on the transport, enough to react to it or
// mark it read.
type EventKey struct {
	ID      string
	ScopeID string
	Sender  string
}

// MembershipChange describes a group membership update.
type MembershipChange struct {
	Action       string // "add" or "remove"
	Participants []string
}

// Event is one inbound message from the transport, modelled as a tagged
// union over the observed kinds. Fields beyond the common header are only
// meaningful for the kinds that carry them.
type Event struct {
	ID       string
	ScopeID  string
	SenderID string
	FromSelf bool
	Kind     EventKind
	At       time.Time

	// Text is the conversation text for text events, or the caption for
	// media and status events.
	Text string

	// Media fields, set for image/video/status events.
	MediaKind MediaKind
	ViewOnce  bool

	// Original is the snapshot of the deleted message, set for deletion
	// notices.
	Original *Event

	// Membership is set for membership-change events.
	Membership *MembershipChange
}

// Key returns the transport key of the event.
func (e Event) Key() EventKey {
	return EventKey{ID: e.ID, ScopeID: e.ScopeID, Sender: e.SenderID}
}

// Summary extracts a best-effort text representation of the event:
// conversation text, media caption, or a bracketed kind placeholder.
func (e Event) Summary() string {
	if e.Text != "" {
		return e.Text
	}
	switch e.Kind {
	case EventImage:
		return "[image]"
	case EventVideo:
		return "[video]"
	case EventStatus:
		if e.MediaKind == MediaVideo {
			return "[video]"
		}
		if e.MediaKind == MediaImage {
			return "[image]"
		}
		return "[status]"
	default:
		return "[" + string(e.Kind) + "]"
	}
}
