package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fit-assistant/internal/config"
	"github.com/yusufkecer/fit-assistant/internal/db"
	"go.uber.org/zap"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	ctx := context.Background()

	database, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "closet.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(ctx, database, zap.NewNop()))

	return NewSQLStore(database, config.DriverSQLite)
}

func TestSQLStore(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	_, ok, err := store.Get(ctx, UnitSystemKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, UnitSystemKey, "metric"))
	require.NoError(t, store.Set(ctx, UnitSystemKey, "imperial"))

	v, ok, err := store.Get(ctx, UnitSystemKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "imperial", v)

	require.NoError(t, store.Delete(ctx, UnitSystemKey))
	require.NoError(t, store.Delete(ctx, UnitSystemKey))
	_, ok, err = store.Get(ctx, UnitSystemKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLStoreBacksStateRepository(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	require.NoError(t, store.Set(ctx, GarmentsKey, "garbage"))

	repo := NewStateRepository(store, zap.NewNop())
	garments, err := repo.LoadGarments(ctx)
	require.NoError(t, err)
	assert.Empty(t, garments)
}

func TestMySQLUpsertDialect(t *testing.T) {
	s := NewSQLStore(nil, config.DriverMySQL)
	assert.Contains(t, s.upsert, "ON DUPLICATE KEY UPDATE")

	s = NewSQLStore(nil, config.DriverSQLite)
	assert.Contains(t, s.upsert, "ON CONFLICT(record_key)")
}
