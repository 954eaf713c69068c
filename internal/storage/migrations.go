package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/zakat-ledger/internal/model"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

// Identifiers are plain INTEGER PRIMARY KEY columns (no AUTOINCREMENT) so a
// new row always gets the current maximum plus one.
var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS zakat_data (
					id INTEGER PRIMARY KEY,
					nama TEXT NOT NULL,
					jenis_zakat TEXT NOT NULL CHECK (jenis_zakat IN ('Fitrah', 'Mal')),
					jumlah TEXT NOT NULL,
					tanggal TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS master_beras (
					id INTEGER PRIMARY KEY,
					nama_beras TEXT NOT NULL,
					harga_per_kg TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS transaksi_zakat (
					id INTEGER PRIMARY KEY,
					id_zakat INTEGER NOT NULL,
					id_beras INTEGER NOT NULL,
					jumlah_beras TEXT NOT NULL,
					total_harga TEXT NOT NULL,
					tanggal TEXT NOT NULL,
					FOREIGN KEY (id_zakat) REFERENCES zakat_data(id),
					FOREIGN KEY (id_beras) REFERENCES master_beras(id)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_transaksi_zakat_id_zakat ON transaksi_zakat(id_zakat)`,
				`CREATE INDEX IF NOT EXISTS idx_transaksi_zakat_id_beras ON transaksi_zakat(id_beras)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed default rice prices",
		Up: func(tx *sql.Tx) error {
			var count int
			if err := tx.QueryRow(`SELECT COUNT(*) FROM master_beras`).Scan(&count); err != nil {
				return fmt.Errorf("failed to count rice rows: %w", err)
			}
			if count > 0 {
				return nil
			}

			for _, rice := range model.DefaultRice() {
				if _, err := tx.Exec(
					`INSERT INTO master_beras (nama_beras, harga_per_kg) VALUES (?, ?)`,
					rice.Name, rice.PricePerKg.StringFixed(2),
				); err != nil {
					return fmt.Errorf("failed to seed rice %q: %w", rice.Name, err)
				}
			}
			return nil
		},
	},
}

// Init creates the schema and seed rows if they are missing.
func (s *SQLiteStorage) Init(ctx context.Context) error {
	return s.Migrate(ctx)
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Get current version
	var currentVersion int
	err = db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
