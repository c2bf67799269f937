// Package monitor wires the directory store, exclusion registry, change
// classifier and cleanup executor together behind the operations the
// command line exposes. Every mutation is persisted immediately; load and
// save failures are reported as diagnostics and never abort.
package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/dirsweep/internal/cleanup"
	"github.com/harrison/dirsweep/internal/diff"
	"github.com/harrison/dirsweep/internal/exclusion"
	"github.com/harrison/dirsweep/internal/fileutil"
	"github.com/harrison/dirsweep/internal/logger"
	"github.com/harrison/dirsweep/internal/models"
	"github.com/harrison/dirsweep/internal/store"
)

// Recorder persists cleanup runs. history.Store implements it.
type Recorder interface {
	RecordRun(ctx context.Context, report *cleanup.Report) (string, error)
}

// Options configures Open.
type Options struct {
	SnapshotPath   string
	ExclusionsPath string

	FS      fileutil.FileSystem // Defaults to fileutil.OS
	Logger  logger.Sink         // Defaults to a no-op logger
	History Recorder            // Optional
	Clock   func() time.Time    // Defaults to models.Now
}

// Monitor is single-threaded and not re-entrant; callers serialise calls.
type Monitor struct {
	snapshotPath   string
	exclusionsPath string

	store      *store.Store
	exclusions *exclusion.Registry
	classifier *diff.Classifier
	executor   *cleanup.Executor
	log        logger.Sink
	history    Recorder
}

// CleanupResult is a cleanup report plus what happened around it.
type CleanupResult struct {
	*cleanup.Report
	RunID       string // Empty when history is disabled or recording failed
	Diagnostics []models.Diagnostic
}

// Open loads both documents and returns a ready Monitor. A document that
// cannot be loaded starts empty and is reported in the returned diagnostics.
func Open(opts Options) (*Monitor, []models.Diagnostic) {
	fsys := opts.FS
	if fsys == nil {
		fsys = fileutil.OS{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	st := store.New(fsys)
	reg := exclusion.NewRegistry()
	if opts.Clock != nil {
		st.SetClock(opts.Clock)
		reg.SetClock(opts.Clock)
	}

	classifier := diff.NewClassifier(st, reg, fsys)
	m := &Monitor{
		snapshotPath:   opts.SnapshotPath,
		exclusionsPath: opts.ExclusionsPath,
		store:          st,
		exclusions:     reg,
		classifier:     classifier,
		executor:       cleanup.NewExecutor(fsys, reg, classifier),
		log:            log,
		history:        opts.History,
	}

	var diags []models.Diagnostic
	if err := st.Load(m.snapshotPath); err != nil {
		diags = append(diags, m.diagnose("load", m.snapshotPath, err))
	}
	if err := reg.Load(m.exclusionsPath); err != nil {
		diags = append(diags, m.diagnose("load", m.exclusionsPath, err))
	}
	log.LogDebug(fmt.Sprintf("loaded %d directories and %d exclusions", st.Len(), reg.Len()))
	return m, diags
}

// diagnose logs err and converts it into a diagnostic.
func (m *Monitor) diagnose(op, path string, err error) models.Diagnostic {
	d := models.Diagnostic{Op: op, Path: path, Message: err.Error()}
	m.log.LogDiagnostic(d)
	return d
}

func (m *Monitor) saveDirectories() []models.Diagnostic {
	if err := m.store.Save(m.snapshotPath); err != nil {
		return []models.Diagnostic{m.diagnose("save", m.snapshotPath, err)}
	}
	return nil
}

func (m *Monitor) saveExclusions() []models.Diagnostic {
	if err := m.exclusions.Save(m.exclusionsPath); err != nil {
		return []models.Diagnostic{m.diagnose("save", m.exclusionsPath, err)}
	}
	return nil
}

// AddDirectory starts monitoring path. The only error is one wrapping
// models.ErrAlreadyMonitored; persistence problems come back as diagnostics.
func (m *Monitor) AddDirectory(path string) ([]models.Diagnostic, error) {
	if err := m.store.Add(path); err != nil {
		return nil, err
	}
	m.log.LogDebug(fmt.Sprintf("monitoring %s", filepath.Clean(path)))
	return m.saveDirectories(), nil
}

// RemoveDirectory stops monitoring path. Removing an unknown path is a no-op
// and reports false.
func (m *Monitor) RemoveDirectory(path string) (bool, []models.Diagnostic) {
	if !m.store.Remove(path) {
		return false, nil
	}
	m.log.LogDebug(fmt.Sprintf("stopped monitoring %s", filepath.Clean(path)))
	return true, m.saveDirectories()
}

// Directories returns copies of every monitored entry sorted by path.
func (m *Monitor) Directories() []*models.DirectoryEntry {
	return m.store.Entries()
}

// SnapshotAll refreshes every baseline and persists the result.
func (m *Monitor) SnapshotAll() store.SnapshotResult {
	result := m.store.SnapshotAll()
	for _, d := range result.Diagnostics {
		m.log.LogDiagnostic(d)
	}
	m.log.LogDebug(fmt.Sprintf("snapshot updated %d, skipped %d", result.Updated, result.Skipped))
	result.Diagnostics = append(result.Diagnostics, m.saveDirectories()...)
	return result
}

// ComputeChanges classifies every monitored directory against its baseline.
func (m *Monitor) ComputeChanges() *models.ChangeSet {
	changes := m.classifier.Classify()
	for _, d := range changes.Diagnostics {
		m.log.LogDiagnostic(d)
	}
	m.log.LogDebug(fmt.Sprintf("computed %d changes (%d new)", changes.Total(), len(changes.New())))
	return changes
}

// Cleanup deletes every New* record in changes, auto-excluding paths that
// cannot be deleted for lack of permission. Per-path failures are carried in
// the report, not as diagnostics. The exclusion document is saved
// when anything was auto-excluded and the run is recorded in history when a
// recorder is configured.
func (m *Monitor) Cleanup(ctx context.Context, changes []models.ChangeRecord) *CleanupResult {
	report := m.executor.Run(changes)
	result := &CleanupResult{Report: report}

	for _, item := range report.Items {
		switch item.Outcome {
		case cleanup.OutcomeFailed:
			m.log.LogDebug(fmt.Sprintf("cleanup %s failed: %v", item.Path, item.Err))
		case cleanup.OutcomeAutoExcluded:
			m.log.LogDebug(fmt.Sprintf("permission denied, auto-excluded %s", item.Path))
		default:
			m.log.LogDebug(fmt.Sprintf("cleanup %s: %s", item.Path, item.Outcome))
		}
	}

	if len(report.AutoExcluded) > 0 {
		result.Diagnostics = append(result.Diagnostics, m.saveExclusions()...)
	}

	if m.history != nil {
		id, err := m.history.RecordRun(ctx, report)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, m.diagnose("history", "", err))
		} else {
			result.RunID = id
		}
	}

	if report.After != nil {
		for _, d := range report.After.Diagnostics {
			m.log.LogDiagnostic(d)
		}
	}
	return result
}

// Exclude adds a manual exclusion for path. It returns false when path was
// already excluded, in which case the existing record is unchanged.
func (m *Monitor) Exclude(path string, kind models.EntryKind) (bool, []models.Diagnostic) {
	path = filepath.Clean(path)
	if !m.exclusions.Add(path, kind, false) {
		return false, nil
	}
	m.log.LogDebug(fmt.Sprintf("excluded %s (%s)", path, kind))
	return true, m.saveExclusions()
}

// ExcludeChange excludes the path of a change record using the type
// observed when the change was classified.
func (m *Monitor) ExcludeChange(rec models.ChangeRecord) (bool, []models.Diagnostic) {
	return m.Exclude(rec.Path, rec.Kind.EntryKind())
}

// Unexclude removes the exclusion for path. Returns false if none existed.
func (m *Monitor) Unexclude(path string) (bool, []models.Diagnostic) {
	path = filepath.Clean(path)
	if !m.exclusions.Remove(path) {
		return false, nil
	}
	m.log.LogDebug(fmt.Sprintf("removed exclusion %s", path))
	return true, m.saveExclusions()
}

// Exclusions returns every exclusion record sorted by path.
func (m *Monitor) Exclusions() []models.ExclusionRecord {
	return m.exclusions.Records()
}
