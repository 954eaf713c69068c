// Package model defines the records kept by the zakat ledger.
package model

import (
	"github.com/shopspring/decimal"
)

// Payer is one zakat contribution by one person (zakat_data).
type Payer struct {
	Date     Date
	Amount   decimal.Decimal
	Name     string
	Category Category
	ID       int64
}
