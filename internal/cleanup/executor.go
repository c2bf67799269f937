// Package cleanup deletes newly appeared entries and turns permission
// failures into automatic exclusions.
package cleanup

import (
	"github.com/harrison/dirsweep/internal/fileutil"
	"github.com/harrison/dirsweep/internal/models"
)

// Outcome is what happened to a single cleanup candidate.
type Outcome string

const (
	OutcomeDeleted      Outcome = "deleted"
	OutcomeAutoExcluded Outcome = "auto-excluded"
	OutcomeSkipped      Outcome = "skipped"
	OutcomeFailed       Outcome = "failed"
)

// Exclusions is the part of the Exclusion Registry cleanup needs.
type Exclusions interface {
	IsExcluded(path string) bool
	Add(path string, kind models.EntryKind, automatic bool) bool
}

// Rescanner recomputes the change set after cleanup.
type Rescanner interface {
	Classify() *models.ChangeSet
}

// Item records the outcome for one candidate.
type Item struct {
	Path    string
	Kind    models.ChangeKind
	Outcome Outcome
	Err     error // Set for OutcomeFailed
}

// Report is the result of one cleanup run.
type Report struct {
	Items        []Item
	Deleted      []string
	AutoExcluded []string
	Skipped      []string
	Failed       []*models.DeletionError
	After        *models.ChangeSet // Fresh diff taken once all candidates are processed
}

// Executor is the Cleanup Executor.
type Executor struct {
	fs         fileutil.FileSystem
	exclusions Exclusions
	rescan     Rescanner
}

// NewExecutor builds an executor. rescan may be nil, in which case
// Report.After is left nil.
func NewExecutor(fsys fileutil.FileSystem, exclusions Exclusions, rescan Rescanner) *Executor {
	if fsys == nil {
		fsys = fileutil.OS{}
	}
	return &Executor{
		fs:         fsys,
		exclusions: exclusions,
		rescan:     rescan,
	}
}

// Run processes every New* record in changes. Deleted records are ignored.
//
// Per candidate: excluded paths are skipped; files are removed directly and
// directories with fileutil.RemoveTree semantics. A permission failure adds
// an automatic exclusion for the path instead of failing; any other failure
// is reported for that path without mutating state. Processing always
// continues with the next candidate.
func (e *Executor) Run(changes []models.ChangeRecord) *Report {
	report := &Report{}

	for _, change := range changes {
		if !change.Kind.IsNew() {
			continue
		}
		item := e.process(change)
		report.add(item)
	}

	if e.rescan != nil {
		report.After = e.rescan.Classify()
	}
	return report
}

func (e *Executor) process(change models.ChangeRecord) Item {
	item := Item{Path: change.Path, Kind: change.Kind}

	if e.exclusions.IsExcluded(change.Path) {
		item.Outcome = OutcomeSkipped
		return item
	}

	err := e.remove(change.Path)
	switch {
	case err == nil:
		item.Outcome = OutcomeDeleted
	case models.IsPermissionDenied(err):
		kind, probeErr := fileutil.ProbeKind(e.fs, change.Path)
		if probeErr != nil {
			kind = change.Kind.EntryKind()
		}
		e.exclusions.Add(change.Path, kind, true)
		item.Outcome = OutcomeAutoExcluded
	default:
		item.Outcome = OutcomeFailed
		item.Err = err
	}
	return item
}

// remove decides file vs directory from the disk at deletion time.
func (e *Executor) remove(path string) error {
	info, err := e.fs.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return e.fs.RemoveTree(path)
	}
	return e.fs.Remove(path)
}

func (r *Report) add(item Item) {
	r.Items = append(r.Items, item)
	switch item.Outcome {
	case OutcomeDeleted:
		r.Deleted = append(r.Deleted, item.Path)
	case OutcomeAutoExcluded:
		r.AutoExcluded = append(r.AutoExcluded, item.Path)
	case OutcomeSkipped:
		r.Skipped = append(r.Skipped, item.Path)
	case OutcomeFailed:
		r.Failed = append(r.Failed, &models.DeletionError{Path: item.Path, Err: item.Err})
	}
}
