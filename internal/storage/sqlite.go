package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"guard_bot/internal/model"
	"guard_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05.000Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetSettings returns the settings record for a scope, or the default record
// if the scope was never updated.
func (s *SQLite) GetSettings(ctx context.Context, scopeID string) (model.ScopeSettings, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT anti_delete, anti_link, auto_react, custom_react_emoji, anti_view_once,
		        save_status, auto_view_status, auto_status_react, status_react_emoji
		 FROM scope_settings WHERE scope_id = ?`, scopeID,
	)

	var st model.ScopeSettings
	var antiDelete, antiLink, autoReact, antiViewOnce int
	var saveStatus, autoViewStatus, autoStatusReact int
	err := row.Scan(&antiDelete, &antiLink, &autoReact, &st.CustomReactEmoji, &antiViewOnce,
		&saveStatus, &autoViewStatus, &autoStatusReact, &st.StatusReactEmoji)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ScopeSettings{}, nil
	}
	if err != nil {
		return model.ScopeSettings{}, fmt.Errorf("scan settings: %w", err)
	}

	st.AntiDelete = antiDelete == 1
	st.AntiLink = antiLink == 1
	st.AutoReact = autoReact == 1
	st.AntiViewOnce = antiViewOnce == 1
	st.SaveStatus = saveStatus == 1
	st.AutoViewStatus = autoViewStatus == 1
	st.AutoStatusReact = autoStatusReact == 1
	return st, nil
}

// UpdateSettings merges the patch onto the current record and upserts the
// full row. The row is the single source of truth; nothing is cached.
func (s *SQLite) UpdateSettings(ctx context.Context, scopeID string, patch model.SettingsPatch) (model.ScopeSettings, error) {
	current, err := s.GetSettings(ctx, scopeID)
	if err != nil {
		return model.ScopeSettings{}, err
	}
	merged := patch.Apply(current)

	now := time.Now().UTC().Format(timeLayout)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scope_settings
		   (scope_id, anti_delete, anti_link, auto_react, custom_react_emoji, anti_view_once,
		    save_status, auto_view_status, auto_status_react, status_react_emoji, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(scope_id) DO UPDATE SET
		   anti_delete = excluded.anti_delete,
		   anti_link = excluded.anti_link,
		   auto_react = excluded.auto_react,
		   custom_react_emoji = excluded.custom_react_emoji,
		   anti_view_once = excluded.anti_view_once,
		   save_status = excluded.save_status,
		   auto_view_status = excluded.auto_view_status,
		   auto_status_react = excluded.auto_status_react,
		   status_react_emoji = excluded.status_react_emoji,
		   updated_at = excluded.updated_at`,
		scopeID, boolToInt(merged.AntiDelete), boolToInt(merged.AntiLink), boolToInt(merged.AutoReact),
		merged.CustomReactEmoji, boolToInt(merged.AntiViewOnce), boolToInt(merged.SaveStatus),
		boolToInt(merged.AutoViewStatus), boolToInt(merged.AutoStatusReact), merged.StatusReactEmoji, now,
	)
	if err != nil {
		return model.ScopeSettings{}, fmt.Errorf("upsert settings: %w", err)
	}
	return merged, nil
}

// InsertArtifact stores the metadata record of a captured artifact.
func (s *SQLite) InsertArtifact(ctx context.Context, a *model.CapturedArtifact) error {
	if a.CapturedAt.IsZero() {
		a.CapturedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO artifacts (id, scope_id, sender_id, kind, captured_at, text_summary, media_ref)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ScopeID, a.SenderID, string(a.Kind), a.CapturedAt.UTC().Format(timeLayout),
		a.TextSummary, a.MediaRef,
	)
	if err != nil {
		return fmt.Errorf("insert artifact: %w", err)
	}
	return nil
}

// ListArtifacts returns up to limit artifacts of a kind, newest last.
func (s *SQLite) ListArtifacts(ctx context.Context, kind model.ArtifactKind, limit int) ([]model.CapturedArtifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scope_id, sender_id, kind, captured_at, text_summary, media_ref
		 FROM (SELECT *, rowid AS rid FROM artifacts WHERE kind = ? ORDER BY captured_at DESC, rowid DESC LIMIT ?)
		 ORDER BY captured_at ASC, rid ASC`,
		string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.CapturedArtifact
	for rows.Next() {
		var (
			a        model.CapturedArtifact
			kindStr  string
			captured string
		)
		if err := rows.Scan(&a.ID, &a.ScopeID, &a.SenderID, &kindStr, &captured, &a.TextSummary, &a.MediaRef); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		a.Kind = model.ArtifactKind(kindStr)
		a.CapturedAt, _ = time.Parse(timeLayout, captured)
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountArtifacts returns the stored artifact count per kind.
func (s *SQLite) CountArtifacts(ctx context.Context) (map[model.ArtifactKind]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM artifacts GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("count artifacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.ArtifactKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[model.ArtifactKind(kind)] = n
	}
	return counts, rows.Err()
}

// DeleteArtifactsBefore removes artifacts captured strictly before cutoff.
func (s *SQLite) DeleteArtifactsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM artifacts WHERE captured_at < ?`,
		cutoff.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("delete artifacts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
