package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/easel/internal/adapters/sqlite"
	"github.com/example/easel/internal/ports/secondary"
)

func TestKVStore_SetGet(t *testing.T) {
	store := sqlite.NewKVStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "settings", []byte(`{"language":"en"}`)))

	got, err := store.Get(ctx, "settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"language":"en"}`, string(got))
}

func TestKVStore_SetOverwrites(t *testing.T) {
	store := sqlite.NewKVStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	require.NoError(t, store.Set(ctx, "k", []byte("v2")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestKVStore_GetMissing(t *testing.T) {
	store := sqlite.NewKVStore(setupTestDB(t))

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, secondary.ErrRecordNotFound)
}

func TestKVStore_Delete(t *testing.T) {
	store := sqlite.NewKVStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, secondary.ErrRecordNotFound)

	assert.NoError(t, store.Delete(ctx, "k"), "deleting a missing key is not an error")
}

func TestKVStore_KeysByPrefix(t *testing.T) {
	store := sqlite.NewKVStore(setupTestDB(t))
	ctx := context.Background()

	for _, k := range []string{
		"emergency_backup_2024-01-02T00:00:00.000000000Z",
		"emergency_backup_2024-01-01T00:00:00.000000000Z",
		"emergencyXbackup",
		"settings",
		"settings_backup",
	} {
		require.NoError(t, store.Set(ctx, k, []byte("{}")))
	}

	keys, err := store.Keys(ctx, "emergency_backup_")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"emergency_backup_2024-01-01T00:00:00.000000000Z",
		"emergency_backup_2024-01-02T00:00:00.000000000Z",
	}, keys)

	all, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
