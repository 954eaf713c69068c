// Package workbook implements the record store on top of three xlsx files,
// one sheet per entity with a header row followed by one row per record.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Backend is the name of the spreadsheet store variant.
const Backend = "xlsx"

// Config locates the workbook files.
type Config struct {
	Dir              string
	PayersFile       string
	RiceFile         string
	TransactionsFile string
}

// DefaultConfig returns the file names used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Dir:              ".",
		PayersFile:       "zakat_data.xlsx",
		RiceFile:         "master_beras.xlsx",
		TransactionsFile: "transaksi_zakat.xlsx",
	}
}

// Store implements service.Store using xlsx files. Every call opens the files
// it needs and closes them before returning.
type Store struct {
	payers       sheet
	rice         sheet
	transactions sheet
}

// New creates a workbook store for cfg. Empty file names fall back to the defaults.
func New(cfg Config) (*Store, error) {
	def := DefaultConfig()
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = def.Dir
	}
	if cfg.PayersFile == "" {
		cfg.PayersFile = def.PayersFile
	}
	if cfg.RiceFile == "" {
		cfg.RiceFile = def.RiceFile
	}
	if cfg.TransactionsFile == "" {
		cfg.TransactionsFile = def.TransactionsFile
	}

	for _, name := range []string{cfg.PayersFile, cfg.RiceFile, cfg.TransactionsFile} {
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			return nil, fmt.Errorf("workbook file %q must have an .xlsx extension", name)
		}
	}

	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", fileError(cfg.Dir, err))
	}

	return &Store{
		payers: sheet{
			path:   filepath.Join(cfg.Dir, cfg.PayersFile),
			name:   "Zakat Data",
			header: []string{"ID", "Nama", "Jenis Zakat", "Jumlah", "Tanggal"},
			kinds:  []cellKind{kindInt, kindText, kindText, kindNumber, kindText},
		},
		rice: sheet{
			path:   filepath.Join(cfg.Dir, cfg.RiceFile),
			name:   "Master Beras",
			header: []string{"ID", "Nama Beras", "Harga per Kg"},
			kinds:  []cellKind{kindInt, kindText, kindNumber},
		},
		transactions: sheet{
			path:   filepath.Join(cfg.Dir, cfg.TransactionsFile),
			name:   "Transaksi Zakat",
			header: []string{"ID", "ID Zakat", "ID Beras", "Jumlah Beras", "Total Harga", "Tanggal"},
			kinds:  []cellKind{kindInt, kindInt, kindInt, kindNumber, kindNumber, kindText},
		},
	}, nil
}

// Backend names this store variant.
func (s *Store) Backend() string {
	return Backend
}

// Paths returns the payer, rice and transaction file locations.
func (s *Store) Paths() []string {
	return []string{s.payers.path, s.rice.path, s.transactions.path}
}

// Init writes a header-only file for every missing workbook. Existing files
// are not opened or rewritten.
func (s *Store) Init(ctx context.Context) error {
	for _, sh := range []sheet{s.payers, s.rice, s.transactions} {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := os.Stat(sh.path)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", sh.path, fileError(sh.path, err))
		}

		if err := sh.write(nil); err != nil {
			return fmt.Errorf("failed to create %s: %w", sh.path, err)
		}
		slog.Info("Created workbook", "path", sh.path)
	}
	return nil
}
