package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/dirsweep/internal/history"
	"github.com/harrison/dirsweep/internal/models"
)

func TestNewPrinter_NonTerminal(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{})
	assert.False(t, p.Color())
}

func TestDirectories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithColor(&buf, false)

	p.Directories([]*models.DirectoryEntry{
		{Path: "/a", Children: []string{"x"}, LastSnapshotAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)},
		{Path: "/b"},
	})

	out := buf.String()
	assert.Contains(t, out, "DIRECTORY")
	assert.Contains(t, out, "2024-03-01 09:00:00")
	assert.Contains(t, out, "No snapshot taken")

	buf.Reset()
	p.Directories(nil)
	assert.Equal(t, "No directories are monitored.\n", buf.String())
}

func TestChanges(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithColor(&buf, false)

	p.Changes(&models.ChangeSet{
		Records: []models.ChangeRecord{
			{Path: "/a/y.txt", Kind: models.ChangeNewFile},
			{Path: "/a/old", Kind: models.ChangeDeleted},
		},
		Diagnostics: []models.Diagnostic{{Op: "changes", Path: "/gone", Message: "directory no longer exists"}},
	})

	out := buf.String()
	assert.Contains(t, out, "/a/y.txt")
	assert.Contains(t, out, "New File")
	assert.Contains(t, out, "Deleted")
	assert.Contains(t, out, "2 change(s), 1 new")
	assert.NotContains(t, out, "/gone")
	assert.NotContains(t, out, "\x1b[")
}

func TestChanges_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithColor(&buf, false)

	p.Changes(&models.ChangeSet{})
	assert.Equal(t, "No changes detected.\n", buf.String())

	buf.Reset()
	p.Changes(nil)
	assert.Equal(t, "No changes detected.\n", buf.String())
}

func TestChanges_Colored(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithColor(&buf, true)

	p.Changes(&models.ChangeSet{Records: []models.ChangeRecord{{Path: "/a/y.txt", Kind: models.ChangeNewFile}}})
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestExclusions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithColor(&buf, false)

	p.Exclusions([]models.ExclusionRecord{
		{Path: "/a/keep", Kind: models.KindFile, ExcludedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)},
		{Path: "/a/locked", Kind: models.KindFolder, Automatic: true},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "2024-03-01 10:00:00")
	assert.Contains(t, lines[2], "Manual")
	assert.Contains(t, lines[3], "Prior to tracking")
	assert.Contains(t, lines[3], "Auto")

	buf.Reset()
	p.Exclusions(nil)
	assert.Equal(t, "No exclusions.\n", buf.String())
}

func TestHistory(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithColor(&buf, false)

	p.History([]*history.Run{
		{ID: "0123456789abcdef", StartedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local), Deleted: 2, Failed: 1},
	})

	out := buf.String()
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "2024-03-01 12:00:00")

	buf.Reset()
	p.History(nil)
	assert.Equal(t, "No cleanup runs recorded.\n", buf.String())
}

func TestPathHistory(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithColor(&buf, false)

	p.PathHistory("/data/y.txt", nil)
	assert.Contains(t, buf.String(), "No cleanup history for /data/y.txt.")

	buf.Reset()
	p.PathHistory("/data/y.txt", []history.RunItem{
		{Path: "/data/y.txt", Kind: "New File", Outcome: "failed", Error: "input/output error"},
		{Path: "/data/y.txt", Kind: "New File", Outcome: "deleted"},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "failed")
	assert.Contains(t, lines[2], "input/output error")
	assert.Contains(t, lines[3], "deleted")
}
