// Package diff compares snapshot baselines with fresh directory listings and
// classifies the differences into change records.
package diff

import (
	"errors"
	"sort"

	"github.com/harrison/dirsweep/internal/models"
)

// ErrNoBaseline is returned for directories that were never snapshotted.
var ErrNoBaseline = errors.New("no snapshot taken")

// Result holds the names added to and removed from a directory.
type Result struct {
	Added   []string
	Removed []string
}

// Empty reports whether nothing changed.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}

// Compute returns current minus baseline as Added and baseline minus current
// as Removed. Both inputs are treated as sets; outputs are sorted.
func Compute(baseline, current []string) Result {
	before := toSet(baseline)
	after := toSet(current)

	return Result{
		Added:   difference(after, before),
		Removed: difference(before, after),
	}
}

// ForEntry diffs an entry's baseline against a fresh listing from list.
// Entries that were never snapshotted yield ErrNoBaseline without listing
// instead of reporting every child as new. Listing errors are returned as is.
func ForEntry(entry *models.DirectoryEntry, list func(dir string) ([]string, error)) (Result, error) {
	if !entry.HasBaseline() {
		return Result{}, ErrNoBaseline
	}
	current, err := list(entry.Path)
	if err != nil {
		return Result{}, err
	}
	return Compute(entry.Children, current), nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// difference returns the sorted members of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for n := range a {
		if _, ok := b[n]; !ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
