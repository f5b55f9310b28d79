// Package capture persists ephemeral content: deleted messages, view-once
// media, and statuses.
package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"guard_bot/internal/blobstore"
	"guard_bot/internal/model"
	"guard_bot/internal/storage"
)

// Capture writes artifact metadata to storage and media to the blob store.
// Storage failures never propagate to event processing: callers get a
// best-effort artifact and the error is logged here.
type Capture struct {
	store storage.Storage
	blobs *blobstore.Store
	log   *slog.Logger
}

// New creates a Capture.
func New(store storage.Storage, blobs *blobstore.Store, log *slog.Logger) *Capture {
	return &Capture{store: store, blobs: blobs, log: log}
}

// DeletedMessage records a deletion notice. The snapshot's text summary is
// extracted best-effort; on storage error the artifact is still returned
// with an empty media ref so the caller can notify.
func (c *Capture) DeletedMessage(ctx context.Context, scopeID, senderID string, snapshot model.Event) model.CapturedArtifact {
	a := model.CapturedArtifact{
		ID:          snapshot.ID,
		ScopeID:     scopeID,
		SenderID:    senderID,
		Kind:        model.ArtifactDeletedMessage,
		CapturedAt:  time.Now().UTC(),
		TextSummary: snapshot.Summary(),
	}
	if a.ID == "" {
		a.ID = ulid.Make().String()
	}
	if err := c.store.InsertArtifact(ctx, &a); err != nil {
		c.log.Error("store deleted message", "scope", scopeID, "id", a.ID, "error", err)
	}
	return a
}

// ViewOnce saves view-once media bytes and records the artifact. A media
// write failure skips the capture entirely: the content is allowed to
// vanish, which is the documented lossy edge case.
func (c *Capture) ViewOnce(ctx context.Context, scopeID, senderID string, media []byte, kind model.MediaKind) (model.CapturedArtifact, bool) {
	ref, err := c.blobs.Save(blobstore.CategoryViewOnce, mediaExt(kind), media)
	if err != nil {
		c.log.Error("save view-once media", "scope", scopeID, "error", err)
		return model.CapturedArtifact{}, false
	}

	artifactKind := model.ArtifactViewOnceImage
	if kind == model.MediaVideo {
		artifactKind = model.ArtifactViewOnceVideo
	}
	a := model.CapturedArtifact{
		ID:         ulid.Make().String(),
		ScopeID:    scopeID,
		SenderID:   senderID,
		Kind:       artifactKind,
		CapturedAt: time.Now().UTC(),
		MediaRef:   ref,
	}
	if err := c.store.InsertArtifact(ctx, &a); err != nil {
		c.log.Error("store view-once artifact", "scope", scopeID, "id", a.ID, "error", err)
	}
	return a, true
}

// Status records a status update, saving its media when present. Media
// failures degrade to a text-only artifact.
func (c *Capture) Status(ctx context.Context, senderID string, ev model.Event, media []byte) model.CapturedArtifact {
	a := model.CapturedArtifact{
		ID:          ev.ID,
		ScopeID:     model.GlobalScope,
		SenderID:    senderID,
		Kind:        model.ArtifactSavedStatus,
		CapturedAt:  time.Now().UTC(),
		TextSummary: ev.Summary(),
	}
	if a.ID == "" {
		a.ID = ulid.Make().String()
	}

	if len(media) > 0 {
		ref, err := c.blobs.Save(blobstore.CategoryStatus, mediaExt(ev.MediaKind), media)
		if err != nil {
			c.log.Error("save status media", "sender", senderID, "error", err)
		} else {
			a.MediaRef = ref
		}
	}

	if err := c.store.InsertArtifact(ctx, &a); err != nil {
		c.log.Error("store status artifact", "sender", senderID, "id", a.ID, "error", err)
	}
	return a
}

// ListRecent returns up to limit artifacts of a kind, newest last.
func (c *Capture) ListRecent(ctx context.Context, kind model.ArtifactKind, limit int) ([]model.CapturedArtifact, error) {
	return c.store.ListArtifacts(ctx, kind, limit)
}

func mediaExt(kind model.MediaKind) string {
	if kind == model.MediaVideo {
		return "mp4"
	}
	return "jpg"
}
