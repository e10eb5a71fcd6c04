package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/utilityapi-cli/internal/domain"
)

func TestStoreRejectsReferencesOutsideRoot(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "token reference is empty"},
		{name: "whitespace", key: "   ", wantErr: "token reference is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "points outside the store"},
		{name: "traversal", key: "../escape", wantErr: "points outside the store"},
		{name: "deep traversal", key: "../../secret", wantErr: "points outside the store"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := domain.TokenRefFor("default")

	require.NoError(t, store.Put(context.Background(), key, "  api-token\n"))

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "api-token", got)

	info, err := os.Stat(filepath.Join(root, key))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tokenMode), info.Mode().Perm())
}

func TestStorePutReplacesLooseTokenFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := domain.TokenRefFor("default")
	path := filepath.Join(root, key)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, store.Put(context.Background(), key, "new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tokenMode), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "token", entries[0].Name())
}

func TestStorePutRejectsEmptyValue(t *testing.T) {
	t.Parallel()

	err := NewStore(t.TempDir()).Put(context.Background(), domain.TokenRefFor("default"), " \n")
	assert.ErrorContains(t, err, "value is empty")
}

func TestStoreGetMissingTokenIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), domain.TokenRefFor("missing"))
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenTokenMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	key := domain.TokenRefFor("default")

	require.NoError(t, store.Delete(context.Background(), key))
	require.NoError(t, store.Delete(context.Background(), key))
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore(t.TempDir())
	assert.ErrorIs(t, store.Put(ctx, domain.TokenRefFor("default"), "api-token"), context.Canceled)
	_, err := store.Get(ctx, domain.TokenRefFor("default"))
	assert.ErrorIs(t, err, context.Canceled)
}
