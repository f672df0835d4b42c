package cartstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"detailing/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFile(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "absent.json")}
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_WritesUnderCartKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := FileStore{Path: path}
	require.NoError(t, store.Save(Cart{Services: []models.Service{{ID: "s1"}}, BusyTimes: []models.TimeRange{}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Contains(t, doc, SnapshotKey)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := &MemoryStore{}
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	in := Cart{Services: []models.Service{{ID: "s1", Name: "Wash"}}, BusyTimes: []models.TimeRange{}}
	require.NoError(t, store.Save(in))
	out, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}
