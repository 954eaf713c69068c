package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/Veraticus/zakat-ledger/internal/service"
	"github.com/Veraticus/zakat-ledger/internal/storage"
	"github.com/Veraticus/zakat-ledger/internal/storetest"
)

func TestSQLiteStorage_Contract(t *testing.T) {
	storetest.RunContract(t, func(t *testing.T) service.Store {
		store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "zakat.db"))
		if err != nil {
			t.Fatalf("failed to create storage: %v", err)
		}
		return store
	})
}
