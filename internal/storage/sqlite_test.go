package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "zakat.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	return store
}

// rawDB opens a direct connection for assertions the Store API does not expose.
func rawDB(t *testing.T, store *SQLiteStorage) *sql.DB {
	t.Helper()
	db, err := store.open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates parent directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "zakat.db")
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		assert.Equal(t, dbPath, store.Path())
		assert.Equal(t, Backend, store.Backend())
		assert.DirExists(t, filepath.Dir(dbPath))
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteStorage("  ")
		assert.ErrorIs(t, err, ErrEmptyString)
	})

	t.Run("rejects in-memory database", func(t *testing.T) {
		_, err := NewSQLiteStorage(":memory:")
		assert.ErrorIs(t, err, ErrInMemoryDatabase)
	})
}

func TestSQLiteStorage_ConnectionPerOperation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// A second instance on the same file sees committed rows immediately.
	other, err := NewSQLiteStorage(store.Path())
	require.NoError(t, err)

	list, err := other.ListRice(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestSQLiteStorage_CanceledContext(t *testing.T) {
	store := createTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListPayers(ctx)
	assert.Error(t, err)
}

//nolint:staticcheck // nil context is exactly what is being tested
func TestSQLiteStorage_NilContext(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.ListPayers(nil)
	assert.ErrorIs(t, err, ErrNilContext)
}
