// Package exclusion owns the set of paths that are permanently ignored by
// new-item reporting and cleanup.
package exclusion

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/harrison/dirsweep/internal/document"
	"github.com/harrison/dirsweep/internal/models"
)

// Registry is the Exclusion Registry. Paths match by exact string equality.
// It is not safe for concurrent use.
type Registry struct {
	now     func() time.Time
	records map[string]*models.ExclusionRecord
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		now:     models.Now,
		records: make(map[string]*models.ExclusionRecord),
	}
}

// SetClock overrides the exclusion timestamp source.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// IsExcluded reports whether path has an exclusion record.
func (r *Registry) IsExcluded(path string) bool {
	_, ok := r.records[path]
	return ok
}

// Add records an exclusion for path. The first record for a path wins:
// later adds return false and leave the existing record untouched.
func (r *Registry) Add(path string, kind models.EntryKind, automatic bool) bool {
	if _, ok := r.records[path]; ok {
		return false
	}
	r.records[path] = &models.ExclusionRecord{
		Path:       path,
		Kind:       kind,
		ExcludedAt: r.now(),
		Automatic:  automatic,
	}
	return true
}

// Remove deletes the record for path. Returns false if none existed.
func (r *Registry) Remove(path string) bool {
	if _, ok := r.records[path]; !ok {
		return false
	}
	delete(r.records, path)
	return true
}

// Get returns a copy of the record for path.
func (r *Registry) Get(path string) (models.ExclusionRecord, bool) {
	rec, ok := r.records[path]
	if !ok {
		return models.ExclusionRecord{}, false
	}
	return *rec, true
}

// Records returns copies of every record sorted by path.
func (r *Registry) Records() []models.ExclusionRecord {
	out := make([]models.ExclusionRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Len returns the number of exclusions.
func (r *Registry) Len() int {
	return len(r.records)
}

// Load replaces the registry with the document at path. Record paths are
// cleaned. On failure the registry is left empty and the error wraps
// ErrPersistence.
func (r *Registry) Load(path string) error {
	r.records = make(map[string]*models.ExclusionRecord)

	records, err := document.Load[models.ExclusionRecord](path)
	if err != nil {
		return err
	}

	loaded := make(map[string]*models.ExclusionRecord, len(records))
	for i := range records {
		rec := records[i]
		rec.Path = filepath.Clean(rec.Path)
		if _, dup := loaded[rec.Path]; dup {
			return fmt.Errorf("%w: %s: duplicate exclusion %s", models.ErrPersistence, path, rec.Path)
		}
		loaded[rec.Path] = &rec
	}

	r.records = loaded
	return nil
}

// Save rewrites the document at path with every record.
func (r *Registry) Save(path string) error {
	return document.Save(path, r.Records())
}
