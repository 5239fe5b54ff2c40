package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, modTime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestListUploads(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeFile(t, dir, "old_orders.csv", now.Add(-2*time.Hour))
	writeFile(t, dir, "new_orders.csv", now)
	writeFile(t, dir, "report.xlsx", now.Add(-time.Hour))
	writeFile(t, dir, "notes.txt", now) // unsupported, skipped
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	d := NewDiscovery(dir)
	uploads, err := d.ListUploads()
	require.NoError(t, err)

	require.Len(t, uploads, 3)
	assert.Equal(t, "new_orders.csv", uploads[0].Name)
	assert.Equal(t, "report.xlsx", uploads[1].Name)
	assert.Equal(t, "old_orders.csv", uploads[2].Name)
}

func TestListUploads_MissingDirectory(t *testing.T) {
	d := NewDiscovery(filepath.Join(t.TempDir(), "does-not-exist"))
	uploads, err := d.ListUploads()
	require.NoError(t, err)
	assert.Empty(t, uploads)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orders.csv", time.Now())

	d := NewDiscovery(dir)

	t.Run("existing file", func(t *testing.T) {
		info, err := d.Resolve("orders.csv")
		require.NoError(t, err)
		assert.Equal(t, "orders.csv", info.Name)
		assert.Equal(t, filepath.Join(dir, "orders.csv"), info.Path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := d.Resolve("ghost.csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		_, err := d.Resolve("../secrets.csv")
		require.Error(t, err)
	})

	t.Run("unsupported extension rejected", func(t *testing.T) {
		_, err := d.Resolve("orders.pdf")
		require.Error(t, err)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := d.Resolve("")
		require.Error(t, err)
	})
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	d := NewDiscovery(dir)

	_, ok, err := d.Latest()
	require.NoError(t, err)
	assert.False(t, ok)

	now := time.Now()
	writeFile(t, dir, "first.csv", now.Add(-time.Hour))
	writeFile(t, dir, "second.csv", now)

	info, ok, err := d.Latest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second.csv", info.Name)
}
