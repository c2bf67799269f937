package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is the on-disk format of snapshot and exclusion timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// NoSnapshotTaken is the persisted timestamp of a directory that was never snapshotted.
const NoSnapshotTaken = "No snapshot taken"

// DirectoryEntry is a monitored directory and its last captured baseline.
type DirectoryEntry struct {
	Path           string    // Absolute path, unique within the store
	Children       []string  // Child names captured at the last snapshot
	LastSnapshotAt time.Time // Zero until the first successful snapshot
}

// NewDirectoryEntry returns an entry that has never been snapshotted.
func NewDirectoryEntry(path string) *DirectoryEntry {
	return &DirectoryEntry{
		Path:     path,
		Children: []string{},
	}
}

// HasBaseline returns true once a snapshot has been taken for the entry.
func (d *DirectoryEntry) HasBaseline() bool {
	return !d.LastSnapshotAt.IsZero()
}

// SnapshotLabel returns the timestamp as shown to users.
func (d *DirectoryEntry) SnapshotLabel() string {
	if !d.HasBaseline() {
		return NoSnapshotTaken
	}
	return d.LastSnapshotAt.Format(TimestampLayout)
}

// Clone returns a deep copy so callers cannot mutate store state.
func (d *DirectoryEntry) Clone() *DirectoryEntry {
	children := make([]string, len(d.Children))
	copy(children, d.Children)
	return &DirectoryEntry{
		Path:           d.Path,
		Children:       children,
		LastSnapshotAt: d.LastSnapshotAt,
	}
}

// directoryDocument is the wire shape of one record in the directory-entry document.
type directoryDocument struct {
	Directory string   `json:"directory"`
	Contents  []string `json:"contents"`
	Timestamp string   `json:"timestamp"`
}

// MarshalJSON encodes the entry in the directory-entry document format.
func (d DirectoryEntry) MarshalJSON() ([]byte, error) {
	contents := d.Children
	if contents == nil {
		contents = []string{}
	}
	return json.Marshal(directoryDocument{
		Directory: d.Path,
		Contents:  contents,
		Timestamp: d.SnapshotLabel(),
	})
}

// UnmarshalJSON decodes and validates one directory-entry record.
func (d *DirectoryEntry) UnmarshalJSON(data []byte) error {
	var doc directoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Directory == "" {
		return errors.New("directory record is missing \"directory\"")
	}

	var snapshotAt time.Time
	if doc.Timestamp != "" && doc.Timestamp != NoSnapshotTaken {
		ts, err := ParseTimestamp(doc.Timestamp)
		if err != nil {
			return fmt.Errorf("directory %s: %w", doc.Directory, err)
		}
		snapshotAt = ts
	}

	children := doc.Contents
	if children == nil {
		children = []string{}
	}

	d.Path = doc.Directory
	d.Children = children
	d.LastSnapshotAt = snapshotAt
	return nil
}

// ParseTimestamp parses a persisted timestamp in local time.
// RFC 3339 is accepted as well for documents written by other tools.
func ParseTimestamp(s string) (time.Time, error) {
	if ts, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return ts, nil
}

// Now returns the current time truncated to the persisted precision.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}
