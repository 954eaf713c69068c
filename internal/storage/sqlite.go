package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Backend is the name of the relational store variant.
const Backend = "sqlite"

// ErrInMemoryDatabase is returned for ":memory:" paths; every operation opens
// its own connection, so an in-memory database would vanish between calls.
var ErrInMemoryDatabase = errors.New("in-memory database is not supported")

// SQLiteStorage implements service.Store using SQLite.
type SQLiteStorage struct {
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance. No connection is
// held; one is opened for each operation.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Validate input
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if dbPath == ":memory:" {
		return nil, ErrInMemoryDatabase
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	return &SQLiteStorage{dbPath: dbPath}, nil
}

// Backend names this store variant.
func (s *SQLiteStorage) Backend() string {
	return Backend
}

// Path returns the database file location.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// open connects to the database with foreign key enforcement on.
func (s *SQLiteStorage) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// withTx runs fn inside a single transaction on a fresh connection. The
// transaction is committed when fn succeeds and rolled back otherwise; the
// connection is always closed.
func (s *SQLiteStorage) withTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	if err := validateContext(ctx); err != nil {
		return err
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Warn("failed to close database", "error", closeErr)
		}
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Warn("failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
