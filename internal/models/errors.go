package models

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrAlreadyMonitored is returned when adding a directory that is already tracked.
	ErrAlreadyMonitored = errors.New("directory is already being monitored")

	// ErrNotMonitored is returned when looking up a directory that is not tracked.
	ErrNotMonitored = errors.New("directory is not being monitored")

	// ErrDirectoryUnavailable means a monitored directory is missing or unreadable.
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// ErrPersistence wraps load and save failures of the persisted documents.
	ErrPersistence = errors.New("persistence error")
)

// DeletionError is a per-path cleanup failure other than permission denial.
type DeletionError struct {
	Path string
	Err  error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("error deleting %s: %v", e.Path, e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

// IsPermissionDenied reports whether err is the recoverable deletion failure.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
