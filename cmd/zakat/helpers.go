package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/zakat-ledger/internal/config"
	"github.com/Veraticus/zakat-ledger/internal/export"
	"github.com/Veraticus/zakat-ledger/internal/service"
	"github.com/Veraticus/zakat-ledger/internal/storage"
	"github.com/Veraticus/zakat-ledger/internal/workbook"
)

// openStore builds the configured store and bootstraps it.
func openStore(ctx context.Context, cfg *config.Config) (service.Store, error) {
	var (
		store service.Store
		err   error
	)
	switch cfg.Backend {
	case config.BackendXLSX:
		store, err = workbook.New(cfg.Workbook)
	default:
		store, err = storage.NewSQLiteStorage(cfg.Database.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}

	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.Backend, err)
	}
	return store, nil
}

// newExporter builds the exporter for cfg. progress receives the progress bar.
func newExporter(cfg *config.Config, source service.ExportSource, progress io.Writer) (*export.Exporter, error) {
	return export.New(source, export.Options{
		Dir:                 cfg.Export.Dir,
		Naming:              cfg.Export.Naming,
		IncludeTransactions: cfg.Export.IncludeTransactions,
		Progress:            progress,
	})
}
