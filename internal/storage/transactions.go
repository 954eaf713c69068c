package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
)

// AddTransaction records a rice transaction. Both referenced rows must exist;
// the total is fixed at the rice price in effect now.
func (s *SQLiteStorage) AddTransaction(ctx context.Context, in model.NewTransaction) (model.Transaction, error) {
	if err := model.ValidateNewTransaction(in); err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		PayerID:    in.PayerID,
		RiceID:     in.RiceID,
		QuantityKg: in.QuantityKg,
		Date:       in.Date,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getPayerTx(ctx, tx, in.PayerID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("payer %d: %w", in.PayerID, common.ErrUnknownPayer)
			}
			return err
		}

		rice, err := getRiceTx(ctx, tx, in.RiceID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("rice %d: %w", in.RiceID, common.ErrUnknownRice)
			}
			return err
		}

		txn.Total = model.TotalFor(rice.PricePerKg, in.QuantityKg)

		result, err := tx.ExecContext(ctx,
			`INSERT INTO transaksi_zakat (id_zakat, id_beras, jumlah_beras, total_harga, tanggal)
			VALUES (?, ?, ?, ?, ?)`,
			txn.PayerID, txn.RiceID, txn.QuantityKg, txn.Total, txn.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get transaction ID: %w", err)
		}
		txn.ID = id
		return nil
	})
	if err != nil {
		return model.Transaction{}, err
	}

	slog.Debug("added transaction", "id", txn.ID, "payer_id", txn.PayerID, "rice_id", txn.RiceID)
	return txn, nil
}

// ListTransactions returns the stored transaction rows ordered by ID.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, id_zakat, id_beras, jumlah_beras, total_harga, tanggal
			FROM transaksi_zakat
			ORDER BY id`)
		if err != nil {
			return fmt.Errorf("failed to query transactions: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var txn model.Transaction
			if err := rows.Scan(&txn.ID, &txn.PayerID, &txn.RiceID, &txn.QuantityKg, &txn.Total, &txn.Date); err != nil {
				return fmt.Errorf("failed to scan transaction: %w", err)
			}
			txns = append(txns, txn)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// ListTransactionViews joins every transaction with its payer and rice rows.
// Unresolvable references read as model.UnknownName.
func (s *SQLiteStorage) ListTransactionViews(ctx context.Context) ([]model.TransactionView, error) {
	var views []model.TransactionView
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT tz.id,
				COALESCE(z.nama, ?), COALESCE(z.jenis_zakat, ?), COALESCE(mb.nama_beras, ?),
				tz.jumlah_beras, tz.total_harga, tz.tanggal
			FROM transaksi_zakat tz
			LEFT JOIN zakat_data z ON tz.id_zakat = z.id
			LEFT JOIN master_beras mb ON tz.id_beras = mb.id
			ORDER BY tz.id`,
			model.UnknownName, model.UnknownName, model.UnknownName,
		)
		if err != nil {
			return fmt.Errorf("failed to query transaction view: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var v model.TransactionView
			if err := rows.Scan(&v.ID, &v.PayerName, &v.Category, &v.RiceName, &v.QuantityKg, &v.Total, &v.Date); err != nil {
				return fmt.Errorf("failed to scan transaction view: %w", err)
			}
			views = append(views, v)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved transaction view", "count", len(views))
	return views, nil
}
