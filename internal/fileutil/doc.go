// Package fileutil provides the filesystem operations used by snapshots,
// change classification and cleanup.
//
// # Purpose
//
// The fileutil package is designed for:
//   - One-level directory listing (snapshots never recurse)
//   - Probing whether an entry is a file or a folder
//   - Bottom-up recursive removal of directories
//
// # Main Components
//
// FileSystem - the interface consumed by the store, the classifier and the
// cleanup executor. Tests substitute fakes to simulate vanished entries and
// permission failures that cannot be reproduced reliably on disk.
//
// OS - the FileSystem backed by the os package.
//
// RemoveTree - deletes a directory the way cleanup requires:
//  1. every descendant file
//  2. every descendant directory, deepest first
//  3. the directory itself
//
// A directory is therefore always empty when os.Remove is called on it.
//
// # Usage Example
//
//	names, err := fileutil.OS{}.ReadChildren("/home/me/Downloads")
//	if err != nil {
//		return err
//	}
//
//	kind, err := fileutil.ProbeKind(fileutil.OS{}, "/home/me/Downloads/new")
//	if err == nil && kind == models.KindFolder {
//		err = fileutil.RemoveTree("/home/me/Downloads/new")
//	}
//
// # Error Handling
//
// Errors from the os package are returned unwrapped so callers can use
// errors.Is(err, fs.ErrPermission) and errors.Is(err, fs.ErrNotExist).
package fileutil
