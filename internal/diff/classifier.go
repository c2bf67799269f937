package diff

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/harrison/dirsweep/internal/fileutil"
	"github.com/harrison/dirsweep/internal/models"
)

// EntrySource yields the monitored directories to classify.
type EntrySource interface {
	Entries() []*models.DirectoryEntry
}

// ExclusionChecker reports whether a path is excluded.
type ExclusionChecker interface {
	IsExcluded(path string) bool
}

// Classifier turns per-directory diffs into the change list shown to users.
//
// Additions whose full path is excluded are suppressed. Removals are always
// reported, whether or not the path is excluded.
type Classifier struct {
	entries    EntrySource
	exclusions ExclusionChecker
	fs         fileutil.FileSystem
}

// NewClassifier wires a classifier to a store and a registry.
func NewClassifier(entries EntrySource, exclusions ExclusionChecker, fsys fileutil.FileSystem) *Classifier {
	if fsys == nil {
		fsys = fileutil.OS{}
	}
	return &Classifier{
		entries:    entries,
		exclusions: exclusions,
		fs:         fsys,
	}
}

// Classify recomputes the change set across all monitored directories.
func (c *Classifier) Classify() *models.ChangeSet {
	set := &models.ChangeSet{Records: []models.ChangeRecord{}}
	for _, entry := range c.entries.Entries() {
		records, diag := c.ClassifyEntry(entry)
		set.Records = append(set.Records, records...)
		if diag != nil {
			set.Diagnostics = append(set.Diagnostics, *diag)
		}
	}
	return set
}

// ClassifyEntry classifies one directory. A skipped directory contributes no
// records and returns a diagnostic explaining why.
func (c *Classifier) ClassifyEntry(entry *models.DirectoryEntry) ([]models.ChangeRecord, *models.Diagnostic) {
	result, err := ForEntry(entry, c.fs.ReadChildren)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoBaseline):
		return nil, &models.Diagnostic{
			Op:      "changes",
			Path:    entry.Path,
			Message: fmt.Sprintf("%v, skipping", err),
		}
	case errors.Is(err, fs.ErrNotExist):
		return nil, &models.Diagnostic{
			Op:      "changes",
			Path:    entry.Path,
			Message: "directory no longer exists",
		}
	default:
		return nil, &models.Diagnostic{
			Op:      "changes",
			Path:    entry.Path,
			Message: fmt.Sprintf("%v: %v", models.ErrDirectoryUnavailable, err),
		}
	}

	var records []models.ChangeRecord
	for _, name := range result.Added {
		full := filepath.Join(entry.Path, name)
		if c.exclusions.IsExcluded(full) {
			continue
		}
		kind, err := fileutil.ProbeKind(c.fs, full)
		if err != nil {
			// Vanished between listing and probing
			continue
		}
		records = append(records, models.ChangeRecord{
			Path: full,
			Kind: models.NewChangeKind(kind),
		})
	}

	for _, name := range result.Removed {
		records = append(records, models.ChangeRecord{
			Path: filepath.Join(entry.Path, name),
			Kind: models.ChangeDeleted,
		})
	}

	return records, nil
}
