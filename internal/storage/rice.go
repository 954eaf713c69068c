package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
)

// AddRice appends a row to the rice price list.
func (s *SQLiteStorage) AddRice(ctx context.Context, rice model.Rice) (model.Rice, error) {
	rice.Name = strings.TrimSpace(rice.Name)
	if err := model.ValidateRice(rice); err != nil {
		return model.Rice{}, err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO master_beras (nama_beras, harga_per_kg) VALUES (?, ?)`,
			rice.Name, rice.PricePerKg,
		)
		if err != nil {
			return fmt.Errorf("failed to insert rice: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get rice ID: %w", err)
		}
		rice.ID = id
		return nil
	})
	if err != nil {
		return model.Rice{}, err
	}

	slog.Debug("added rice", "id", rice.ID, "name", rice.Name)
	return rice, nil
}

// GetRice returns the price-list row with the given ID or common.ErrNotFound.
func (s *SQLiteStorage) GetRice(ctx context.Context, id int64) (model.Rice, error) {
	var rice model.Rice
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		rice, err = getRiceTx(ctx, tx, id)
		return err
	})
	return rice, err
}

func getRiceTx(ctx context.Context, tx *sql.Tx, id int64) (model.Rice, error) {
	var rice model.Rice
	err := tx.QueryRowContext(ctx,
		`SELECT id, nama_beras, harga_per_kg FROM master_beras WHERE id = ?`, id,
	).Scan(&rice.ID, &rice.Name, &rice.PricePerKg)

	if errors.Is(err, sql.ErrNoRows) {
		return model.Rice{}, fmt.Errorf("rice %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return model.Rice{}, fmt.Errorf("failed to query rice: %w", err)
	}
	return rice, nil
}

// ListRice returns the whole price list ordered by ID.
func (s *SQLiteStorage) ListRice(ctx context.Context) ([]model.Rice, error) {
	var list []model.Rice
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT id, nama_beras, harga_per_kg FROM master_beras ORDER BY id`)
		if err != nil {
			return fmt.Errorf("failed to query rice: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var rice model.Rice
			if err := rows.Scan(&rice.ID, &rice.Name, &rice.PricePerKg); err != nil {
				return fmt.Errorf("failed to scan rice: %w", err)
			}
			list = append(list, rice)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved rice price list", "count", len(list))
	return list, nil
}
