// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/zakat-ledger/internal/model"
)

// Store defines the contract every persistence backend implements.
// Each call acquires the datastore, performs one logical action and
// releases it again; no handle is kept between calls.
type Store interface {
	// Backend names the variant, e.g. "sqlite" or "xlsx".
	Backend() string

	// Init creates the datastore if it is missing. Calling it again leaves
	// existing records untouched.
	Init(ctx context.Context) error

	// Payer operations
	AddPayer(ctx context.Context, payer model.Payer) (model.Payer, error)
	GetPayer(ctx context.Context, id int64) (model.Payer, error)
	ListPayers(ctx context.Context) ([]model.Payer, error)
	UpdatePayer(ctx context.Context, payer model.Payer) error
	DeletePayer(ctx context.Context, id int64) error

	// Rice price list operations. Rows are append-only.
	AddRice(ctx context.Context, rice model.Rice) (model.Rice, error)
	GetRice(ctx context.Context, id int64) (model.Rice, error)
	ListRice(ctx context.Context) ([]model.Rice, error)

	// Transaction operations
	AddTransaction(ctx context.Context, txn model.NewTransaction) (model.Transaction, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	ListTransactionViews(ctx context.Context) ([]model.TransactionView, error)
}

// ExportSource is the read-only subset of Store used by exports.
type ExportSource interface {
	ListPayers(ctx context.Context) ([]model.Payer, error)
	ListTransactionViews(ctx context.Context) ([]model.TransactionView, error)
}
