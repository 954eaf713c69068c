package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "referenced payer",
			err:  fmt.Errorf("payer 1 has 2 transactions: %w", ErrPayerReferenced),
			want: "Cannot delete: the payer has related transactions.",
		},
		{
			name: "unknown payer",
			err:  fmt.Errorf("payer 9: %w", ErrUnknownPayer),
			want: "Payer ID is not valid!",
		},
		{
			name: "unknown rice",
			err:  fmt.Errorf("rice 9: %w", ErrUnknownRice),
			want: "Rice ID is not valid!",
		},
		{
			name: "not found",
			err:  fmt.Errorf("payer 9: %w", ErrNotFound),
			want: "ID not found!",
		},
		{
			name: "file locked",
			err:  fmt.Errorf("failed to open zakat_data.xlsx: %w", ErrFileLocked),
			want: "The file is in use. Close the Excel file first and try again.",
		},
		{
			name: "nothing to export",
			err:  ErrNothingToExport,
			want: "There is no payer data to export.",
		},
		{
			name: "user error",
			err:  fmt.Errorf("wrapped: %w", NewUserError("Custom message", ErrNotFound)),
			want: "Custom message",
		},
		{
			name: "anything else",
			err:  errors.New("disk I/O error"),
			want: "Failed to save data!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "Failed to save data!"))
		})
	}
}

func TestUserError(t *testing.T) {
	err := NewUserError("Export failed", ErrFileLocked)
	assert.Equal(t, "Export failed: file is in use", err.Error())
	assert.ErrorIs(t, err, ErrFileLocked)

	bare := NewUserError("Export failed", nil)
	assert.Equal(t, "Export failed", bare.Error())
}
