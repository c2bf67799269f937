package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/dirsweep/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name string `json:"name"`
}

func TestLoad_MissingFile(t *testing.T) {
	records, err := Load[record](filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	records, err := Load[record](path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	records, err := Load[record](path)
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Empty(t, records)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "doc.json")

	require.NoError(t, Save(path, []record{{Name: "a"}, {Name: "b"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    {\n        \"name\": \"a\"")

	records, err := Load[record](path)
	require.NoError(t, err)
	assert.Equal(t, []record{{Name: "a"}, {Name: "b"}}, records)
}

func TestSave_NilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, Save[record](path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSave_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	// Parent "directory" is a regular file
	err := Save(filepath.Join(blocker, "doc.json"), []record{{Name: "a"}})
	assert.ErrorIs(t, err, models.ErrPersistence)
}
