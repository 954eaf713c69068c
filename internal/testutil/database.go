// Package testutil provides store fixtures for tests that exercise code above
// the storage layer. Every fixture lives in its own temporary directory.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/zakat-ledger/internal/model"
	"github.com/Veraticus/zakat-ledger/internal/service"
	"github.com/Veraticus/zakat-ledger/internal/storage"
	"github.com/Veraticus/zakat-ledger/internal/workbook"
)

// Backends lists every store variant, for tests that run against each.
func Backends() []string {
	return []string{storage.Backend, workbook.Backend}
}

// TestStore represents a bootstrapped store with associated test utilities.
type TestStore struct {
	Store service.Store
	t     *testing.T
	Dir   string
}

// StoreOptions provides configuration options for test store setup.
type StoreOptions struct {
	CustomSetup func(context.Context, service.Store) error
	Backend     string
	Payers      []model.Payer
	Rice        []model.Rice
	SkipInit    bool
}

// SetupStore creates an initialized store of the given backend.
//
// Example:
//
//	ts := testutil.SetupStore(t, storage.Backend)
//	rice := ts.MustEnsureRice()
func SetupStore(t *testing.T, backend string) *TestStore {
	t.Helper()
	return SetupStoreWithOptions(t, StoreOptions{Backend: backend})
}

// SetupStoreWithOptions creates a store with custom options. Payers and rice
// rows are added in order after Init.
func SetupStoreWithOptions(t *testing.T, opts StoreOptions) *TestStore {
	t.Helper()

	dir := t.TempDir()
	var (
		store service.Store
		err   error
	)
	switch opts.Backend {
	case storage.Backend, "":
		store, err = storage.NewSQLiteStorage(filepath.Join(dir, "zakat.db"))
	case workbook.Backend:
		cfg := workbook.DefaultConfig()
		cfg.Dir = dir
		store, err = workbook.New(cfg)
	default:
		t.Fatalf("unknown backend %q", opts.Backend)
	}
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	ctx := context.Background()
	if !opts.SkipInit {
		if err := store.Init(ctx); err != nil {
			t.Fatalf("failed to initialize store: %v", err)
		}
	}

	for _, r := range opts.Rice {
		if _, err := store.AddRice(ctx, r); err != nil {
			t.Fatalf("failed to seed rice %q: %v", r.Name, err)
		}
	}
	for _, p := range opts.Payers {
		if _, err := store.AddPayer(ctx, p); err != nil {
			t.Fatalf("failed to seed payer %q: %v", p.Name, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestStore{
		Store: store,
		Dir:   dir,
		t:     t,
	}
}

// MustAddPayer adds a payer or fails the test.
func (ts *TestStore) MustAddPayer(p model.Payer) model.Payer {
	ts.t.Helper()
	added, err := ts.Store.AddPayer(context.Background(), p)
	if err != nil {
		ts.t.Fatalf("failed to add payer %q: %v", p.Name, err)
	}
	return added
}

// MustEnsureRice seeds the default price list when the store has none and
// returns the list.
func (ts *TestStore) MustEnsureRice() []model.Rice {
	ts.t.Helper()
	ctx := context.Background()

	list, err := ts.Store.ListRice(ctx)
	if err != nil {
		ts.t.Fatalf("failed to list rice: %v", err)
	}
	if len(list) > 0 {
		return list
	}

	for _, r := range model.DefaultRice() {
		added, err := ts.Store.AddRice(ctx, r)
		if err != nil {
			ts.t.Fatalf("failed to seed rice %q: %v", r.Name, err)
		}
		list = append(list, added)
	}
	return list
}
