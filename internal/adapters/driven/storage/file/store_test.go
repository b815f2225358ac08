package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	assert.DirExists(t, dir)
}

func TestNewStore_InvalidPath(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestStore_Get_NotFound(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "recordbook-state-v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_PutAndGet(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "state", []byte(`{"v":1}`)))
	require.NoError(t, store.Put(ctx, "state", []byte(`{"v":2}`)))

	got, err := store.Get(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))

	info, err := os.Stat(store.PathFor("state"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_PutLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Put(ctx, "state", []byte("x")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestStore_PathFor_EscapesKey(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path := store.PathFor("../escape/attempt")
	assert.Equal(t, store.Dir(), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".json"))
}

func TestStore_PutFailureKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "state", []byte("good")))

	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0700) })
	if f, err := os.CreateTemp(dir, "writable"); err == nil {
		// Running as root: permissions are not enforced.
		f.Close()
		os.Remove(f.Name())
		t.Skip("directory permissions not enforced")
	}

	assert.Error(t, store.Put(ctx, "state", []byte("bad")))

	got, err := store.Get(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, "good", string(got))
}

func TestStore_CancelledContext(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "state", []byte("x")), context.Canceled)
	_, err = store.Get(ctx, "state")
	assert.ErrorIs(t, err, context.Canceled)
}
