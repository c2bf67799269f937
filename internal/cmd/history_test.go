package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAfterClean(t *testing.T) {
	e := newTestEnv(t)
	e.baseline(t)

	out := e.mustRun(t, "history")
	assert.Contains(t, out, "No cleanup runs recorded.")

	y := e.write(t, "y.txt")
	e.mustRun(t, "clean", "--yes")

	out = e.mustRun(t, "history", "--verbose")
	assert.Contains(t, out, "DELETED")
	assert.Contains(t, out, y+" (New File) deleted")
}

func TestHistoryForPath(t *testing.T) {
	e := newTestEnv(t)
	e.baseline(t)

	y := e.write(t, "y.txt")
	out := e.mustRun(t, "history", "--path", y)
	assert.Contains(t, out, "No cleanup history for "+y+".")

	e.mustRun(t, "clean", "--yes")

	out = e.mustRun(t, "history", "--path", y)
	assert.Contains(t, out, "OUTCOME")
	assert.Contains(t, out, "New File")
	assert.Contains(t, out, "deleted")

	other := filepath.Join(e.dir, "x.txt")
	out = e.mustRun(t, "history", "--path", other)
	assert.Contains(t, out, "No cleanup history for "+other+".")
}

func TestHistoryDisabled(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(e.home, "config.yaml"), []byte("history:\n  enabled: false\n"), 0644))

	out := e.mustRun(t, "history")
	assert.Contains(t, out, "Cleanup history is disabled.")
}
