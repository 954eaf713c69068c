// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Store errors.
	ErrNotFound        = errors.New("not found")
	ErrPayerReferenced = errors.New("payer has related transactions")
	ErrUnknownPayer    = errors.New("unknown payer id")
	ErrUnknownRice     = errors.New("unknown rice id")
	ErrFileLocked      = errors.New("file is in use")

	// Export errors.
	ErrNothingToExport = errors.New("no data to export")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage picks the message shown to the user for a failed store operation.
// Errors without a specific diagnostic fall back to fallback.
func UserMessage(err error, fallback string) string {
	var userErr *UserError
	switch {
	case errors.As(err, &userErr):
		return userErr.UserMessage
	case errors.Is(err, ErrPayerReferenced):
		return "Cannot delete: the payer has related transactions."
	case errors.Is(err, ErrUnknownPayer):
		return "Payer ID is not valid!"
	case errors.Is(err, ErrUnknownRice):
		return "Rice ID is not valid!"
	case errors.Is(err, ErrNotFound):
		return "ID not found!"
	case errors.Is(err, ErrFileLocked):
		return "The file is in use. Close the Excel file first and try again."
	case errors.Is(err, ErrNothingToExport):
		return "There is no payer data to export."
	default:
		return fallback
	}
}
