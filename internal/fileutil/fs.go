package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/dirsweep/internal/models"
)

// FileSystem is the set of filesystem operations the snapshot, diff and
// cleanup code depends on. OS is the real implementation.
type FileSystem interface {
	// ReadChildren returns the names of the immediate children of dir.
	ReadChildren(dir string) ([]string, error)
	// Stat describes path, following symlinks.
	Stat(path string) (fs.FileInfo, error)
	// Lstat describes path without following a final symlink.
	Lstat(path string) (fs.FileInfo, error)
	// Remove deletes a single file or empty directory.
	Remove(path string) error
	// RemoveTree deletes a directory and everything below it.
	RemoveTree(path string) error
}

// OS implements FileSystem on top of the os package.
type OS struct{}

// ReadChildren lists one level of dir. Order is not significant.
func (OS) ReadChildren(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Stat calls os.Stat.
func (OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Lstat calls os.Lstat.
func (OS) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

// Remove calls os.Remove.
func (OS) Remove(path string) error {
	return os.Remove(path)
}

// RemoveTree calls the package-level RemoveTree.
func (o OS) RemoveTree(path string) error {
	return RemoveTree(path)
}

// ProbeKind returns the on-disk type of path. Symlinks are reported as
// files so that cleanup removes the link and never walks its target.
func ProbeKind(fsys FileSystem, path string) (models.EntryKind, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return models.KindFolder, nil
	}
	return models.KindFile, nil
}

// IsDirectory reports whether path resolves to a directory. A symlink to a
// directory counts.
func IsDirectory(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// RemoveTree deletes the directory at root bottom-up: every descendant file
// first, then every descendant directory deepest first, and finally root
// itself. Each directory is empty when it is removed. The first failure
// aborts the removal and is returned unwrapped from the os call so callers
// can test it with errors.Is.
func RemoveTree(root string) error {
	return removeTree(root, os.Remove)
}

func removeTree(root string, remove func(string) error) error {
	info, err := os.Lstat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "removetree", Path: root, Err: fmt.Errorf("not a directory")}
	}

	var files, dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := remove(f); err != nil {
			return err
		}
	}

	// Deepest directories first
	sort.SliceStable(dirs, func(i, j int) bool {
		return depth(dirs[i]) > depth(dirs[j])
	})
	for _, d := range dirs {
		if err := remove(d); err != nil {
			return err
		}
	}

	return remove(root)
}

func depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}
