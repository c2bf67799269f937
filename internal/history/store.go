// Package history records cleanup runs in a SQLite database so past
// deletions and automatic exclusions can be reviewed later.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/dirsweep/internal/cleanup"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded cleanup invocation.
type Run struct {
	ID           string
	StartedAt    time.Time
	Deleted      int
	AutoExcluded int
	Skipped      int
	Failed       int
	Items        []RunItem
}

// RunItem is the outcome for one path within a run.
type RunItem struct {
	Path    string
	Kind    string
	Outcome string
	Error   string
}

// Store manages the cleanup history database.
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" gives a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath, now: time.Now}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// execWithRetry retries on "database is locked" with exponential backoff.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// SetClock overrides the time source used for run timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores report as a new run and returns its generated ID.
func (s *Store) RecordRun(ctx context.Context, report *cleanup.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("record run: nil report")
	}
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO cleanup_runs
		(id, started_at, deleted_count, auto_excluded_count, skipped_count, failed_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		s.now().UTC(),
		len(report.Deleted),
		len(report.AutoExcluded),
		len(report.Skipped),
		len(report.Failed),
	)
	if err != nil {
		return "", fmt.Errorf("insert cleanup run: %w", err)
	}

	for _, item := range report.Items {
		var errMsg sql.NullString
		if item.Err != nil {
			errMsg = sql.NullString{String: item.Err.Error(), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO cleanup_items
			(run_id, path, kind, outcome, error_message)
			VALUES (?, ?, ?, ?, ?)`,
			id, item.Path, string(item.Kind), string(item.Outcome), errMsg)
		if err != nil {
			return "", fmt.Errorf("insert cleanup item %s: %w", item.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit cleanup run: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first, with their items.
// A limit <= 0 returns every run.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, started_at, deleted_count, auto_excluded_count, skipped_count, failed_count
		FROM cleanup_runs
		ORDER BY started_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cleanup runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.Deleted, &run.AutoExcluded, &run.Skipped, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan cleanup run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cleanup runs: %w", err)
	}
	rows.Close()

	for _, run := range runs {
		items, err := s.runItems(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		run.Items = items
	}
	return runs, nil
}

func (s *Store) runItems(ctx context.Context, runID string) ([]RunItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, kind, outcome, error_message
		FROM cleanup_items
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query cleanup items: %w", err)
	}
	defer rows.Close()

	var items []RunItem
	for rows.Next() {
		var item RunItem
		var errMsg sql.NullString
		if err := rows.Scan(&item.Path, &item.Kind, &item.Outcome, &errMsg); err != nil {
			return nil, fmt.Errorf("scan cleanup item: %w", err)
		}
		item.Error = errMsg.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// PathHistory returns every recorded outcome for path, oldest first.
func (s *Store) PathHistory(ctx context.Context, path string) ([]RunItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT i.path, i.kind, i.outcome, i.error_message
		FROM cleanup_items i
		JOIN cleanup_runs r ON r.id = i.run_id
		WHERE i.path = ?
		ORDER BY r.started_at, i.id`, path)
	if err != nil {
		return nil, fmt.Errorf("query path history: %w", err)
	}
	defer rows.Close()

	var items []RunItem
	for rows.Next() {
		var item RunItem
		var errMsg sql.NullString
		if err := rows.Scan(&item.Path, &item.Kind, &item.Outcome, &errMsg); err != nil {
			return nil, fmt.Errorf("scan path history: %w", err)
		}
		item.Error = errMsg.String
		items = append(items, item)
	}
	return items, rows.Err()
}
