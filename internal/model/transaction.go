package model

import "github.com/shopspring/decimal"

// UnknownName is shown in place of a payer or rice that no longer resolves.
const UnknownName = "Unknown"

// NewTransaction holds the caller-supplied fields of a rice transaction.
// The store assigns the ID and computes the total.
type NewTransaction struct {
	Date       Date
	QuantityKg decimal.Decimal
	PayerID    int64
	RiceID     int64
}

// Transaction redeems a payment into a quantity of rice (transaksi_zakat).
type Transaction struct {
	Date       Date
	QuantityKg decimal.Decimal
	// Total is the price per kg at insertion time multiplied by QuantityKg.
	Total   decimal.Decimal
	ID      int64
	PayerID int64
	RiceID  int64
}

// TransactionView is a transaction joined with its payer and rice rows.
type TransactionView struct {
	Date       Date
	QuantityKg decimal.Decimal
	Total      decimal.Decimal
	PayerName  string
	Category   string
	RiceName   string
	ID         int64
}

// TotalFor computes the stored total for quantityKg of rice at pricePerKg.
func TotalFor(pricePerKg, quantityKg decimal.Decimal) decimal.Decimal {
	return pricePerKg.Mul(quantityKg)
}
