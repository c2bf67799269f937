package store

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/harrison/dirsweep/internal/fileutil"
	"github.com/harrison/dirsweep/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)

func newTestStore() *Store {
	s := New(fileutil.OS{})
	s.SetClock(func() time.Time { return fixedTime })
	return s
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestAdd(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.Add("/data/downloads"))
	assert.Equal(t, 1, s.Len())

	entry, err := s.Get("/data/downloads")
	require.NoError(t, err)
	assert.Empty(t, entry.Children)
	assert.False(t, entry.HasBaseline())
	assert.Equal(t, models.NoSnapshotTaken, entry.SnapshotLabel())
}

func TestAdd_AlreadyMonitored(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Add("/data/downloads"))

	err := s.Add("/data/downloads/")
	assert.ErrorIs(t, err, models.ErrAlreadyMonitored)
	assert.Equal(t, 1, s.Len())
}

func TestAdd_DoesNotTouchFilesystem(t *testing.T) {
	s := newTestStore()
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	require.NoError(t, s.Add(missing))
	_, err := os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}

func TestRemove(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Add("/a"))

	assert.True(t, s.Remove("/a"))
	_, err := s.Get("/a")
	assert.ErrorIs(t, err, models.ErrNotMonitored)

	// Absent path is a no-op
	assert.False(t, s.Remove("/a"))
}

func TestGet_NotMonitored(t *testing.T) {
	_, err := newTestStore().Get("/nope")
	assert.ErrorIs(t, err, models.ErrNotMonitored)
}

func TestEntries_SortedCopies(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Add("/b"))
	require.NoError(t, s.Add("/a"))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "/a", entries[0].Path)
	assert.Equal(t, "/b", entries[1].Path)

	entries[0].Children = append(entries[0].Children, "mutated")
	again, _ := s.Get("/a")
	assert.Empty(t, again.Children)
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "x.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	touch(t, filepath.Join(dir, "sub", "deep.txt"))

	s := newTestStore()
	require.NoError(t, s.Add(dir))
	require.NoError(t, s.Snapshot(dir))

	entry, err := s.Get(dir)
	require.NoError(t, err)
	children := entry.Children
	sort.Strings(children)
	assert.Equal(t, []string{"sub", "x.txt"}, children)
	assert.True(t, entry.LastSnapshotAt.Equal(fixedTime))
}

func TestSnapshot_SymlinkedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "real")
	require.NoError(t, os.Mkdir(target, 0755))
	touch(t, filepath.Join(target, "x.txt"))
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	s := newTestStore()
	require.NoError(t, s.Add(link))
	require.NoError(t, s.Snapshot(link))

	entry, err := s.Get(link)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt"}, entry.Children)
	assert.True(t, entry.HasBaseline())
}

func TestSnapshot_OverwritesBaseline(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "old.txt"))

	s := newTestStore()
	require.NoError(t, s.Add(dir))
	require.NoError(t, s.Snapshot(dir))

	require.NoError(t, os.Remove(filepath.Join(dir, "old.txt")))
	touch(t, filepath.Join(dir, "new.txt"))
	require.NoError(t, s.Snapshot(dir))

	entry, _ := s.Get(dir)
	assert.Equal(t, []string{"new.txt"}, entry.Children)
}

func TestSnapshot_DirectoryUnavailableKeepsBaseline(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "watched")
	require.NoError(t, os.Mkdir(dir, 0755))
	touch(t, filepath.Join(dir, "keep.txt"))

	s := newTestStore()
	require.NoError(t, s.Add(dir))
	require.NoError(t, s.Snapshot(dir))
	before, _ := s.Get(dir)

	require.NoError(t, os.RemoveAll(dir))
	s.SetClock(func() time.Time { return fixedTime.Add(time.Hour) })

	err := s.Snapshot(dir)
	assert.ErrorIs(t, err, models.ErrDirectoryUnavailable)

	after, _ := s.Get(dir)
	assert.Equal(t, before.Children, after.Children)
	assert.True(t, after.LastSnapshotAt.Equal(before.LastSnapshotAt))
}

func TestSnapshot_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	touch(t, file)

	s := newTestStore()
	require.NoError(t, s.Add(file))
	assert.ErrorIs(t, s.Snapshot(file), models.ErrDirectoryUnavailable)
}

func TestSnapshotAll_PartialFailure(t *testing.T) {
	good := t.TempDir()
	touch(t, filepath.Join(good, "a.txt"))
	missing := filepath.Join(t.TempDir(), "gone")

	s := newTestStore()
	require.NoError(t, s.Add(good))
	require.NoError(t, s.Add(missing))

	result := s.SnapshotAll()
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, missing, result.Diagnostics[0].Path)

	entry, _ := s.Get(good)
	assert.True(t, entry.HasBaseline())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "x.txt"))
	docPath := filepath.Join(t.TempDir(), "folder_snapshot.json")

	s := newTestStore()
	require.NoError(t, s.Add(dir))
	require.NoError(t, s.Add("/never/snapshotted"))
	require.NoError(t, s.Snapshot(dir))
	require.NoError(t, s.Save(docPath))

	loaded := newTestStore()
	require.NoError(t, loaded.Load(docPath))

	want := s.Entries()
	got := loaded.Entries()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Path, got[i].Path)
		assert.Equal(t, want[i].Children, got[i].Children)
		assert.True(t, want[i].LastSnapshotAt.Equal(got[i].LastSnapshotAt),
			"timestamp mismatch for %s", want[i].Path)
	}
}

func TestSave_DocumentFormat(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "folder_snapshot.json")
	s := newTestStore()
	require.NoError(t, s.Add("/a"))
	require.NoError(t, s.Save(docPath))

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"directory":"/a","contents":[],"timestamp":"No snapshot taken"}]`, string(data))
}

func TestSave_ExcludesRemovedDirectory(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "folder_snapshot.json")
	s := newTestStore()
	require.NoError(t, s.Add("/a"))
	require.NoError(t, s.Add("/b"))
	require.NoError(t, s.Save(docPath))

	s.Remove("/a")
	require.NoError(t, s.Save(docPath))

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"/a"`)
	assert.Contains(t, string(data), `"/b"`)
}

func TestLoad_LegacyDocument(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "folder_snapshot.json")
	legacy := `[
    {
        "directory": "/home/me/Downloads",
        "contents": ["a.zip", "b.pdf"],
        "timestamp": "2024-05-01 08:15:00"
    },
    {
        "directory": "/home/me/Desktop",
        "contents": [],
        "timestamp": "No snapshot taken"
    }
]`
	require.NoError(t, os.WriteFile(docPath, []byte(legacy), 0644))

	s := newTestStore()
	require.NoError(t, s.Load(docPath))
	require.Equal(t, 2, s.Len())

	downloads, err := s.Get("/home/me/Downloads")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.zip", "b.pdf"}, downloads.Children)
	assert.Equal(t, "2024-05-01 08:15:00", downloads.SnapshotLabel())

	desktop, err := s.Get("/home/me/Desktop")
	require.NoError(t, err)
	assert.False(t, desktop.HasBaseline())
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Add("/stale"))

	require.NoError(t, s.Load(filepath.Join(t.TempDir(), "missing.json")))
	assert.Equal(t, 0, s.Len())
}

func TestLoad_MalformedFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{oops`},
		{"wrong shape", `{"directory": "/a"}`},
		{"missing directory", `[{"contents": []}]`},
		{"bad timestamp", `[{"directory": "/a", "contents": [], "timestamp": "yesterday"}]`},
		{"contents not strings", `[{"directory": "/a", "contents": [1, 2]}]`},
		{"duplicate directory", `[{"directory": "/a"}, {"directory": "/a/"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docPath := filepath.Join(t.TempDir(), "folder_snapshot.json")
			require.NoError(t, os.WriteFile(docPath, []byte(tt.content), 0644))

			s := newTestStore()
			require.NoError(t, s.Add("/previous"))

			err := s.Load(docPath)
			assert.ErrorIs(t, err, models.ErrPersistence)
			assert.Equal(t, 0, s.Len())
		})
	}
}
