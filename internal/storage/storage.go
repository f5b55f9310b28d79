// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"
	"time"

	"guard_bot/internal/model"
)

// Storage is the interface for all persistence operations.
type Storage interface {
	// GetSettings returns the settings record for a scope. A scope that was
	// never updated yields the all-false default record, never an error.
	GetSettings(ctx context.Context, scopeID string) (model.ScopeSettings, error)

	// UpdateSettings merges the patch onto the current record, persists the
	// result, and returns it. The durable write happens before any state
	// visible to callers changes.
	UpdateSettings(ctx context.Context, scopeID string, patch model.SettingsPatch) (model.ScopeSettings, error)

	InsertArtifact(ctx context.Context, a *model.CapturedArtifact) error

	// ListArtifacts returns up to limit artifacts of the given kind in
	// insertion order, newest last.
	ListArtifacts(ctx context.Context, kind model.ArtifactKind, limit int) ([]model.CapturedArtifact, error)

	// CountArtifacts returns the number of stored artifacts per kind.
	CountArtifacts(ctx context.Context) (map[model.ArtifactKind]int, error)

	// DeleteArtifactsBefore removes every artifact captured strictly before
	// cutoff and returns the number of rows removed.
	DeleteArtifactsBefore(ctx context.Context, cutoff time.Time) (int, error)

	Close() error
}
