// Package blobstore persists captured media files on the local filesystem.
package blobstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
)

// Categories of stored media, one subdirectory each.
const (
	CategoryViewOnce = "viewonce"
	CategoryStatus   = "status"
	CategoryDeleted  = "deleted"
	CategoryTemp     = "temp"
)

var categories = []string{CategoryViewOnce, CategoryStatus, CategoryDeleted, CategoryTemp}

// Store writes media blobs under a root directory, one subdirectory per
// category, with ULID-based collision-resistant file names.
type Store struct {
	root string
}

// New creates the store root and its category subdirectories. An uncreatable
// root is a startup-fatal condition for the caller.
func New(root string) (*Store, error) {
	for _, c := range categories {
		if err := os.MkdirAll(filepath.Join(root, c), 0o750); err != nil {
			return nil, fmt.Errorf("create media dir %s: %w", c, err)
		}
	}
	return &Store{root: root}, nil
}

// Save writes data into the category directory and returns the blob ref,
// a path relative to the store root.
func (s *Store) Save(category, ext string, data []byte) (string, error) {
	name := ulid.Make().String()
	if ext != "" {
		name += "." + ext
	}
	ref := filepath.Join(category, name)
	if err := os.WriteFile(filepath.Join(s.root, ref), data, 0o640); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return ref, nil
}

// Open returns the blob bytes for a ref produced by Save.
func (s *Store) Open(ref string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, ref))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

// Remove deletes a single blob.
func (s *Store) Remove(ref string) error {
	if err := os.Remove(filepath.Join(s.root, ref)); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// DeleteBefore removes every blob modified strictly before cutoff, across
// all categories. Deletion is best-effort per file: the first error is
// returned but the walk continues. Returns files removed and bytes freed.
func (s *Store) DeleteBefore(cutoff time.Time) (int, int64, error) {
	var removed int
	var freed int64
	var firstErr error

	for _, c := range categories {
		dir := filepath.Join(s.root, c)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("read dir %s: %w", c, err)
			}
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if !info.ModTime().Before(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("remove %s: %w", e.Name(), err)
				}
				continue
			}
			removed++
			freed += info.Size()
		}
	}
	return removed, freed, firstErr
}
