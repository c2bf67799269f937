package models

import "encoding/json"

// ChangeKind classifies a ChangeRecord.
type ChangeKind string

const (
	ChangeNewFile      ChangeKind = "New File"
	ChangeNewDirectory ChangeKind = "New Folder"
	ChangeDeleted      ChangeKind = "Deleted"
)

// IsNew returns true for additions, the only kind cleanup acts on.
func (k ChangeKind) IsNew() bool {
	return k == ChangeNewFile || k == ChangeNewDirectory
}

// EntryKind maps an addition to the on-disk type observed at diff time.
// Deleted changes report KindFile since their original type is unrecoverable.
func (k ChangeKind) EntryKind() EntryKind {
	if k == ChangeNewDirectory {
		return KindFolder
	}
	return KindFile
}

// NewChangeKind returns the addition kind for an observed entry type.
func NewChangeKind(kind EntryKind) ChangeKind {
	if kind == KindFolder {
		return ChangeNewDirectory
	}
	return ChangeNewFile
}

// ChangeRecord reports one added or removed child. It is never persisted.
type ChangeRecord struct {
	Path string     `json:"path"`
	Kind ChangeKind `json:"kind"`
}

// Diagnostic is a non-fatal condition tied to a path and operation.
type Diagnostic struct {
	Op      string `json:"op"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// String formats the diagnostic for status output.
func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Op + ": " + d.Message
	}
	return d.Op + " " + d.Path + ": " + d.Message
}

// ChangeSet is the aggregate result of classifying every monitored directory.
type ChangeSet struct {
	Records     []ChangeRecord `json:"changes"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
}

// MarshalJSON adds the record count as "total".
func (c ChangeSet) MarshalJSON() ([]byte, error) {
	type plain ChangeSet
	return json.Marshal(struct {
		plain
		Total int `json:"total"`
	}{plain(c), len(c.Records)})
}

// Total returns the number of change records.
func (c *ChangeSet) Total() int {
	return len(c.Records)
}

// New returns only the addition records.
func (c *ChangeSet) New() []ChangeRecord {
	var out []ChangeRecord
	for _, r := range c.Records {
		if r.Kind.IsNew() {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the record for path, if present.
func (c *ChangeSet) Find(path string) (ChangeRecord, bool) {
	for _, r := range c.Records {
		if r.Path == path {
			return r, true
		}
	}
	return ChangeRecord{}, false
}
