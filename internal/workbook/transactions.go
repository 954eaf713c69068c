package workbook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
)

func transactionRow(t model.Transaction) []string {
	return []string{
		formatID(t.ID),
		formatID(t.PayerID),
		formatID(t.RiceID),
		t.QuantityKg.String(),
		t.Total.String(),
		t.Date.String(),
	}
}

func decodeTransaction(row []string) (model.Transaction, error) {
	id, ok := rowID(row)
	if !ok {
		return model.Transaction{}, fmt.Errorf("invalid id %q", cell(row, 0))
	}
	// Missing references decode as zero so the view can mark them unknown.
	payerID, _ := parseID(cell(row, 1))
	riceID, _ := parseID(cell(row, 2))

	qty, err := parseDecimal(cell(row, 3))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: invalid quantity %q", id, cell(row, 3))
	}
	total, err := parseDecimal(cell(row, 4))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: invalid total %q", id, cell(row, 4))
	}
	date, err := parseDate(cell(row, 5))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: invalid date %q", id, cell(row, 5))
	}

	return model.Transaction{
		ID:         id,
		PayerID:    payerID,
		RiceID:     riceID,
		QuantityKg: qty,
		Total:      total,
		Date:       date,
	}, nil
}

func decodeTransactions(rows [][]string) []model.Transaction {
	txns := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		t, err := decodeTransaction(row)
		if err != nil {
			slog.Warn("Skipping unreadable transaction row", "row", i+2, "error", err)
			continue
		}
		txns = append(txns, t)
	}
	return txns
}

// AddTransaction appends a transaction row after checking that the payer and
// rice rows exist. The total uses the rice price read now and is never
// recomputed.
func (s *Store) AddTransaction(ctx context.Context, in model.NewTransaction) (model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return model.Transaction{}, err
	}
	if err := model.ValidateNewTransaction(in); err != nil {
		return model.Transaction{}, err
	}

	payerRows, err := s.payers.read()
	if err != nil {
		return model.Transaction{}, err
	}
	_, payers := payersByID(payerRows)
	if _, ok := payers[in.PayerID]; !ok {
		return model.Transaction{}, fmt.Errorf("payer %d: %w", in.PayerID, common.ErrUnknownPayer)
	}

	riceRows, err := s.rice.read()
	if err != nil {
		return model.Transaction{}, err
	}
	_, rice := riceByID(riceRows)
	r, ok := rice[in.RiceID]
	if !ok {
		return model.Transaction{}, fmt.Errorf("rice %d: %w", in.RiceID, common.ErrUnknownRice)
	}

	rows, err := s.transactions.read()
	if err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		ID:         nextID(rows),
		PayerID:    in.PayerID,
		RiceID:     in.RiceID,
		QuantityKg: in.QuantityKg,
		Total:      model.TotalFor(r.PricePerKg, in.QuantityKg),
		Date:       in.Date,
	}
	if err := s.transactions.write(append(rows, transactionRow(txn))); err != nil {
		return model.Transaction{}, err
	}

	slog.Debug("added transaction", "id", txn.ID, "payer_id", txn.PayerID, "rice_id", txn.RiceID)
	return txn, nil
}

// ListTransactions returns the transaction rows in file order.
func (s *Store) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.transactions.read()
	if err != nil {
		return nil, err
	}
	return decodeTransactions(rows), nil
}

// ListTransactionViews resolves payer and rice names for every transaction row.
// Unresolvable references read as model.UnknownName.
func (s *Store) ListTransactionViews(ctx context.Context) ([]model.TransactionView, error) {
	txns, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	payerRows, err := s.payers.read()
	if err != nil {
		return nil, err
	}
	_, payers := payersByID(payerRows)

	riceRows, err := s.rice.read()
	if err != nil {
		return nil, err
	}
	_, rice := riceByID(riceRows)

	views := make([]model.TransactionView, 0, len(txns))
	for _, t := range txns {
		v := model.TransactionView{
			ID:         t.ID,
			PayerName:  model.UnknownName,
			Category:   model.UnknownName,
			RiceName:   model.UnknownName,
			QuantityKg: t.QuantityKg,
			Total:      t.Total,
			Date:       t.Date,
		}
		if p, ok := payers[t.PayerID]; ok {
			v.PayerName = p.Name
			v.Category = string(p.Category)
		}
		if r, ok := rice[t.RiceID]; ok {
			v.RiceName = r.Name
		}
		views = append(views, v)
	}

	slog.Debug("retrieved transaction view", "count", len(views))
	return views, nil
}
