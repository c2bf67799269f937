package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EntryKind is the on-disk type of an entry.
type EntryKind string

const (
	KindFile   EntryKind = "File"
	KindFolder EntryKind = "Folder"
)

// PriorToTracking is shown for exclusions that carry no timestamp.
const PriorToTracking = "Prior to tracking"

// ParseEntryKind accepts the persisted values and their lowercase CLI forms.
func ParseEntryKind(s string) (EntryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return KindFile, nil
	case "folder", "directory", "dir":
		return KindFolder, nil
	default:
		return "", fmt.Errorf("unknown entry type %q (want File or Folder)", s)
	}
}

// ExclusionRecord is a path that new-item reporting and cleanup ignore.
type ExclusionRecord struct {
	Path       string
	Kind       EntryKind
	ExcludedAt time.Time // Zero when excluded before tracking began
	Automatic  bool      // Created by cleanup after a permission failure
}

// Source returns "Auto" or "Manual".
func (e *ExclusionRecord) Source() string {
	if e.Automatic {
		return "Auto"
	}
	return "Manual"
}

// ExcludedLabel returns the timestamp as shown to users.
func (e *ExclusionRecord) ExcludedLabel() string {
	if e.ExcludedAt.IsZero() {
		return PriorToTracking
	}
	return e.ExcludedAt.Format(TimestampLayout)
}

type exclusionDocument struct {
	Path         string    `json:"path"`
	Type         EntryKind `json:"type"`
	Timestamp    string    `json:"timestamp,omitempty"`
	AutoExcluded bool      `json:"auto_excluded,omitempty"`
}

// MarshalJSON encodes the record in the exclusion document format.
func (e ExclusionRecord) MarshalJSON() ([]byte, error) {
	doc := exclusionDocument{
		Path:         e.Path,
		Type:         e.Kind,
		AutoExcluded: e.Automatic,
	}
	if !e.ExcludedAt.IsZero() {
		doc.Timestamp = e.ExcludedAt.Format(TimestampLayout)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes and validates one exclusion record.
func (e *ExclusionRecord) UnmarshalJSON(data []byte) error {
	var doc exclusionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Path == "" {
		return errors.New("exclusion record is missing \"path\"")
	}
	if doc.Type != KindFile && doc.Type != KindFolder {
		return fmt.Errorf("exclusion %s: invalid type %q", doc.Path, doc.Type)
	}

	var excludedAt time.Time
	if doc.Timestamp != "" {
		ts, err := ParseTimestamp(doc.Timestamp)
		if err != nil {
			return fmt.Errorf("exclusion %s: %w", doc.Path, err)
		}
		excludedAt = ts
	}

	e.Path = doc.Path
	e.Kind = doc.Type
	e.ExcludedAt = excludedAt
	e.Automatic = doc.AutoExcluded
	return nil
}
