package workbook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
)

func payerRow(p model.Payer) []string {
	return []string{formatID(p.ID), p.Name, string(p.Category), p.Amount.String(), p.Date.String()}
}

func decodePayer(row []string) (model.Payer, error) {
	id, ok := rowID(row)
	if !ok {
		return model.Payer{}, fmt.Errorf("invalid id %q", cell(row, 0))
	}
	amount, err := parseDecimal(cell(row, 3))
	if err != nil {
		return model.Payer{}, fmt.Errorf("payer %d: invalid amount %q", id, cell(row, 3))
	}
	date, err := parseDate(cell(row, 4))
	if err != nil {
		return model.Payer{}, fmt.Errorf("payer %d: invalid date %q", id, cell(row, 4))
	}
	return model.Payer{
		ID:       id,
		Name:     cell(row, 1),
		Category: model.Category(cell(row, 2)),
		Amount:   amount,
		Date:     date,
	}, nil
}

// payersByID decodes every readable payer row. Rows that do not decode are
// logged and skipped.
func payersByID(rows [][]string) ([]model.Payer, map[int64]model.Payer) {
	payers := make([]model.Payer, 0, len(rows))
	byID := make(map[int64]model.Payer, len(rows))
	for i, row := range rows {
		p, err := decodePayer(row)
		if err != nil {
			slog.Warn("Skipping unreadable payer row", "row", i+2, "error", err)
			continue
		}
		payers = append(payers, p)
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}
	return payers, byID
}

// AddPayer appends a payer row and returns it with its assigned ID.
func (s *Store) AddPayer(ctx context.Context, payer model.Payer) (model.Payer, error) {
	if err := ctx.Err(); err != nil {
		return model.Payer{}, err
	}
	payer.Name = strings.TrimSpace(payer.Name)
	if err := model.ValidatePayer(payer); err != nil {
		return model.Payer{}, err
	}

	rows, err := s.payers.read()
	if err != nil {
		return model.Payer{}, err
	}

	payer.ID = nextID(rows)
	if err := s.payers.write(append(rows, payerRow(payer))); err != nil {
		return model.Payer{}, err
	}

	slog.Debug("added payer", "id", payer.ID, "category", payer.Category)
	return payer, nil
}

// GetPayer returns the first payer row with the given ID or common.ErrNotFound.
func (s *Store) GetPayer(ctx context.Context, id int64) (model.Payer, error) {
	if err := ctx.Err(); err != nil {
		return model.Payer{}, err
	}
	rows, err := s.payers.read()
	if err != nil {
		return model.Payer{}, err
	}

	_, byID := payersByID(rows)
	p, ok := byID[id]
	if !ok {
		return model.Payer{}, fmt.Errorf("payer %d: %w", id, common.ErrNotFound)
	}
	return p, nil
}

// ListPayers returns the payer rows in file order.
func (s *Store) ListPayers(ctx context.Context) ([]model.Payer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.payers.read()
	if err != nil {
		return nil, err
	}

	payers, _ := payersByID(rows)
	slog.Debug("retrieved payers", "count", len(payers))
	return payers, nil
}

// UpdatePayer overwrites the first row holding payer.ID.
func (s *Store) UpdatePayer(ctx context.Context, payer model.Payer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := model.ValidateID(payer.ID); err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidPayer, err)
	}
	payer.Name = strings.TrimSpace(payer.Name)
	if err := model.ValidatePayer(payer); err != nil {
		return err
	}

	rows, err := s.payers.read()
	if err != nil {
		return err
	}

	for i, row := range rows {
		if id, ok := rowID(row); ok && id == payer.ID {
			rows[i] = payerRow(payer)
			if err := s.payers.write(rows); err != nil {
				return err
			}
			slog.Debug("updated payer", "id", payer.ID)
			return nil
		}
	}
	return fmt.Errorf("payer %d: %w", payer.ID, common.ErrNotFound)
}

// DeletePayer removes every row holding id, unless a transaction row
// references the payer.
func (s *Store) DeletePayer(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := model.ValidateID(id); err != nil {
		return err
	}

	txnRows, err := s.transactions.read()
	if err != nil {
		return err
	}
	var refs int
	for _, row := range txnRows {
		if payerID, ok := parseID(cell(row, 1)); ok && payerID == id {
			refs++
		}
	}
	if refs > 0 {
		return fmt.Errorf("payer %d has %d transactions: %w", id, refs, common.ErrPayerReferenced)
	}

	rows, err := s.payers.read()
	if err != nil {
		return err
	}
	kept := rows[:0:0]
	for _, row := range rows {
		if rid, ok := rowID(row); ok && rid == id {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == len(rows) {
		return fmt.Errorf("payer %d: %w", id, common.ErrNotFound)
	}

	if err := s.payers.write(kept); err != nil {
		return err
	}
	slog.Debug("deleted payer", "id", id, "rows", len(rows)-len(kept))
	return nil
}
