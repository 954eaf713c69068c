package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrInvalidPayer       = errors.New("invalid payer")
	ErrInvalidRice        = errors.New("invalid rice")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// ValidatePayer checks every field a store persists for a payer.
// The ID is not checked since new payers have none yet.
func ValidatePayer(p Payer) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidPayer)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: category must be Fitrah or Mal, got %q", ErrInvalidPayer, p.Category)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidPayer)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidPayer)
	}
	return nil
}

// ValidateRice checks a price-list row.
func ValidateRice(r Rice) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRice)
	}
	if !r.PricePerKg.IsPositive() {
		return fmt.Errorf("%w: price per kg must be greater than 0", ErrInvalidRice)
	}
	return nil
}

// ValidateNewTransaction checks the caller-supplied transaction fields.
func ValidateNewTransaction(t NewTransaction) error {
	if t.PayerID <= 0 {
		return fmt.Errorf("%w: payer id must be positive", ErrInvalidTransaction)
	}
	if t.RiceID <= 0 {
		return fmt.Errorf("%w: rice id must be positive", ErrInvalidTransaction)
	}
	if !t.QuantityKg.IsPositive() {
		return fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidTransaction)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	return nil
}

// ValidateID checks a record identifier.
func ValidateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id must be positive, got %d", id)
	}
	return nil
}
