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

const payerColumns = `id, nama, jenis_zakat, jumlah, tanggal`

// AddPayer inserts a payer and returns it with its assigned ID.
func (s *SQLiteStorage) AddPayer(ctx context.Context, payer model.Payer) (model.Payer, error) {
	payer.Name = strings.TrimSpace(payer.Name)
	if err := model.ValidatePayer(payer); err != nil {
		return model.Payer{}, err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO zakat_data (nama, jenis_zakat, jumlah, tanggal) VALUES (?, ?, ?, ?)`,
			payer.Name, string(payer.Category), payer.Amount, payer.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get payer ID: %w", err)
		}
		payer.ID = id
		return nil
	})
	if err != nil {
		return model.Payer{}, err
	}

	slog.Debug("added payer", "id", payer.ID, "category", payer.Category)
	return payer, nil
}

// GetPayer returns the payer with the given ID or common.ErrNotFound.
func (s *SQLiteStorage) GetPayer(ctx context.Context, id int64) (model.Payer, error) {
	var payer model.Payer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		payer, err = getPayerTx(ctx, tx, id)
		return err
	})
	return payer, err
}

func getPayerTx(ctx context.Context, tx *sql.Tx, id int64) (model.Payer, error) {
	var payer model.Payer
	err := tx.QueryRowContext(ctx,
		`SELECT `+payerColumns+` FROM zakat_data WHERE id = ?`, id,
	).Scan(&payer.ID, &payer.Name, &payer.Category, &payer.Amount, &payer.Date)

	if errors.Is(err, sql.ErrNoRows) {
		return model.Payer{}, fmt.Errorf("payer %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return model.Payer{}, fmt.Errorf("failed to query payer: %w", err)
	}
	return payer, nil
}

// ListPayers returns every payer ordered by ID.
func (s *SQLiteStorage) ListPayers(ctx context.Context) ([]model.Payer, error) {
	var payers []model.Payer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT `+payerColumns+` FROM zakat_data ORDER BY id`)
		if err != nil {
			return fmt.Errorf("failed to query payers: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var payer model.Payer
			if err := rows.Scan(&payer.ID, &payer.Name, &payer.Category, &payer.Amount, &payer.Date); err != nil {
				return fmt.Errorf("failed to scan payer: %w", err)
			}
			payers = append(payers, payer)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating payers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved payers", "count", len(payers))
	return payers, nil
}

// UpdatePayer overwrites every field of an existing payer.
func (s *SQLiteStorage) UpdatePayer(ctx context.Context, payer model.Payer) error {
	if err := model.ValidateID(payer.ID); err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidPayer, err)
	}
	payer.Name = strings.TrimSpace(payer.Name)
	if err := model.ValidatePayer(payer); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE zakat_data
			SET nama = ?, jenis_zakat = ?, jumlah = ?, tanggal = ?
			WHERE id = ?`,
			payer.Name, string(payer.Category), payer.Amount, payer.Date, payer.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update payer: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("payer %d: %w", payer.ID, common.ErrNotFound)
		}

		slog.Debug("updated payer", "id", payer.ID)
		return nil
	})
}

// DeletePayer removes a payer that no transaction references.
func (s *SQLiteStorage) DeletePayer(ctx context.Context, id int64) error {
	if err := model.ValidateID(id); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var refs int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM transaksi_zakat WHERE id_zakat = ?`, id,
		).Scan(&refs); err != nil {
			return fmt.Errorf("failed to count payer transactions: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("payer %d has %d transactions: %w", id, refs, common.ErrPayerReferenced)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM zakat_data WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete payer: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("payer %d: %w", id, common.ErrNotFound)
		}

		slog.Debug("deleted payer", "id", id)
		return nil
	})
}
