package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/burstguard/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestLoadStore_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "output.json")

	log, err := LoadStore(path)
	require.NoError(t, err)
	require.Empty(t, log)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, info.Size())
}

func TestLoadStore_EmptyAndNull(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	log, err := LoadStore(empty)
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Empty(t, log)

	null := filepath.Join(dir, "null.json")
	require.NoError(t, os.WriteFile(null, []byte("null"), 0o644))
	log, err = LoadStore(null)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestLoadStore_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": [`), 0o644))

	_, err := LoadStore(path)
	require.ErrorIs(t, err, activity.ErrStorageParse)
}

func TestSaveStore_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")
	log := activity.ActivityLog{
		"a@example.com": {"2024-07-01T12:34:56.789Z", "2024-07-01T12:35:00.000Z"},
	}
	require.NoError(t, SaveStore(path, log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{
  "a@example.com": [
    "2024-07-01T12:34:56.789Z",
    "2024-07-01T12:35:00.000Z"
  ]
}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file should be renamed away")
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")
	original := `{
  ".$emad:@test2.com": ["2024-07-01T12:34:56.789Z", "2024-07-01T14:34:56+02:00"],
  "b": []
}`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	first, err := LoadStore(path)
	require.NoError(t, err)
	require.NoError(t, SaveStore(path, first))

	second, err := LoadStore(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, activity.Timestamp("2024-07-01T14:34:56+02:00"), second[".$emad:@test2.com"][1])
}
