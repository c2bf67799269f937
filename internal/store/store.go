// Package store owns the monitored directories and their snapshot baselines.
package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/harrison/dirsweep/internal/document"
	"github.com/harrison/dirsweep/internal/fileutil"
	"github.com/harrison/dirsweep/internal/models"
)

// Store is the Directory Entry Store. It is not safe for concurrent use.
type Store struct {
	fs      fileutil.FileSystem
	now     func() time.Time
	entries map[string]*models.DirectoryEntry
}

// SnapshotResult summarises a SnapshotAll call.
type SnapshotResult struct {
	Updated     int
	Skipped     int
	Diagnostics []models.Diagnostic
}

// New returns an empty store reading directories through fsys.
func New(fsys fileutil.FileSystem) *Store {
	if fsys == nil {
		fsys = fileutil.OS{}
	}
	return &Store{
		fs:      fsys,
		now:     models.Now,
		entries: make(map[string]*models.DirectoryEntry),
	}
}

// SetClock overrides the snapshot timestamp source.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Add starts monitoring path. It never touches the filesystem.
func (s *Store) Add(path string) error {
	path = filepath.Clean(path)
	if _, ok := s.entries[path]; ok {
		return fmt.Errorf("%w: %s", models.ErrAlreadyMonitored, path)
	}
	s.entries[path] = models.NewDirectoryEntry(path)
	return nil
}

// Remove stops monitoring path. Returns false if it was not monitored.
func (s *Store) Remove(path string) bool {
	path = filepath.Clean(path)
	if _, ok := s.entries[path]; !ok {
		return false
	}
	delete(s.entries, path)
	return true
}

// Get returns a copy of the entry for path.
func (s *Store) Get(path string) (*models.DirectoryEntry, error) {
	path = filepath.Clean(path)
	entry, ok := s.entries[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNotMonitored, path)
	}
	return entry.Clone(), nil
}

// Entries returns copies of every entry sorted by path.
func (s *Store) Entries() []*models.DirectoryEntry {
	out := make([]*models.DirectoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Len returns the number of monitored directories.
func (s *Store) Len() int {
	return len(s.entries)
}

// Snapshot re-reads the immediate children of path and replaces its
// baseline. When the directory is missing or unreadable the existing
// baseline is kept and an error wrapping ErrDirectoryUnavailable is returned.
func (s *Store) Snapshot(path string) error {
	path = filepath.Clean(path)
	entry, ok := s.entries[path]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrNotMonitored, path)
	}

	if !fileutil.IsDirectory(s.fs, path) {
		return fmt.Errorf("%w: directory no longer exists: %s", models.ErrDirectoryUnavailable, path)
	}

	children, err := s.fs.ReadChildren(path)
	if err != nil {
		return fmt.Errorf("%w: error reading directory %s: %v", models.ErrDirectoryUnavailable, path, err)
	}

	// Full overwrite, stale names are discarded
	entry.Children = children
	entry.LastSnapshotAt = s.now()
	return nil
}

// SnapshotAll snapshots every entry, continuing past unavailable directories.
func (s *Store) SnapshotAll() SnapshotResult {
	var result SnapshotResult
	for _, entry := range s.Entries() {
		if err := s.Snapshot(entry.Path); err != nil {
			result.Skipped++
			result.Diagnostics = append(result.Diagnostics, models.Diagnostic{
				Op:      "snapshot",
				Path:    entry.Path,
				Message: err.Error(),
			})
			continue
		}
		result.Updated++
	}
	return result
}

// Load replaces the store contents with the document at path. On failure
// the store is left empty and the error wraps ErrPersistence.
func (s *Store) Load(path string) error {
	s.entries = make(map[string]*models.DirectoryEntry)

	records, err := document.Load[models.DirectoryEntry](path)
	if err != nil {
		return err
	}

	entries := make(map[string]*models.DirectoryEntry, len(records))
	for i := range records {
		rec := records[i]
		rec.Path = filepath.Clean(rec.Path)
		if _, dup := entries[rec.Path]; dup {
			return fmt.Errorf("%w: %s: duplicate directory %s", models.ErrPersistence, path, rec.Path)
		}
		entries[rec.Path] = &rec
	}

	s.entries = entries
	return nil
}

// Save rewrites the document at path with every entry.
func (s *Store) Save(path string) error {
	entries := s.Entries()
	records := make([]models.DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		records = append(records, *e)
	}
	return document.Save(path, records)
}
