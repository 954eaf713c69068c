package workbook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
)

func riceRow(r model.Rice) []string {
	return []string{formatID(r.ID), r.Name, r.PricePerKg.String()}
}

func decodeRice(row []string) (model.Rice, error) {
	id, ok := rowID(row)
	if !ok {
		return model.Rice{}, fmt.Errorf("invalid id %q", cell(row, 0))
	}
	price, err := parseDecimal(cell(row, 2))
	if err != nil {
		return model.Rice{}, fmt.Errorf("rice %d: invalid price %q", id, cell(row, 2))
	}
	return model.Rice{ID: id, Name: cell(row, 1), PricePerKg: price}, nil
}

func riceByID(rows [][]string) ([]model.Rice, map[int64]model.Rice) {
	list := make([]model.Rice, 0, len(rows))
	byID := make(map[int64]model.Rice, len(rows))
	for i, row := range rows {
		r, err := decodeRice(row)
		if err != nil {
			slog.Warn("Skipping unreadable rice row", "row", i+2, "error", err)
			continue
		}
		list = append(list, r)
		if _, dup := byID[r.ID]; !dup {
			byID[r.ID] = r
		}
	}
	return list, byID
}

// AddRice appends a price-list row.
func (s *Store) AddRice(ctx context.Context, rice model.Rice) (model.Rice, error) {
	if err := ctx.Err(); err != nil {
		return model.Rice{}, err
	}
	rice.Name = strings.TrimSpace(rice.Name)
	if err := model.ValidateRice(rice); err != nil {
		return model.Rice{}, err
	}

	rows, err := s.rice.read()
	if err != nil {
		return model.Rice{}, err
	}

	rice.ID = nextID(rows)
	if err := s.rice.write(append(rows, riceRow(rice))); err != nil {
		return model.Rice{}, err
	}

	slog.Debug("added rice", "id", rice.ID, "name", rice.Name)
	return rice, nil
}

// GetRice returns the price-list row with the given ID or common.ErrNotFound.
func (s *Store) GetRice(ctx context.Context, id int64) (model.Rice, error) {
	if err := ctx.Err(); err != nil {
		return model.Rice{}, err
	}
	rows, err := s.rice.read()
	if err != nil {
		return model.Rice{}, err
	}

	_, byID := riceByID(rows)
	r, ok := byID[id]
	if !ok {
		return model.Rice{}, fmt.Errorf("rice %d: %w", id, common.ErrNotFound)
	}
	return r, nil
}

// ListRice returns the price list in file order.
func (s *Store) ListRice(ctx context.Context) ([]model.Rice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.rice.read()
	if err != nil {
		return nil, err
	}

	list, _ := riceByID(rows)
	return list, nil
}
