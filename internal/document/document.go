// Package document reads and writes the JSON documents dirsweep persists.
// Both documents are arrays of records, rewritten in full on every save.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/harrison/dirsweep/internal/filelock"
	"github.com/harrison/dirsweep/internal/models"
)

// indent matches the layout of documents written by earlier releases.
const indent = "    "

// Load decodes the array at path into records. A missing file yields an
// empty slice and no error. Any other failure, including a malformed or
// invalid record, is wrapped in models.ErrPersistence.
func Load[T any](path string) ([]T, error) {
	data, err := filelock.LockAndRead(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return []T{}, fmt.Errorf("%w: read %s: %v", models.ErrPersistence, path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return []T{}, fmt.Errorf("%w: parse %s: %v", models.ErrPersistence, path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Save encodes records as an indented JSON array and replaces path with it.
func Save[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", indent)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", models.ErrPersistence, path, err)
	}
	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", models.ErrPersistence, path, err)
	}
	return nil
}
