package model

import "github.com/shopspring/decimal"

// Rice is a row of the rice price list (master_beras).
type Rice struct {
	PricePerKg decimal.Decimal
	Name       string
	ID         int64
}

// DefaultRice is the price list seeded into a fresh relational store.
func DefaultRice() []Rice {
	return []Rice{
		{Name: "Beras Premium", PricePerKg: decimal.NewFromInt(15000)},
		{Name: "Beras Medium", PricePerKg: decimal.NewFromInt(12000)},
		{Name: "Beras Standard", PricePerKg: decimal.NewFromInt(10000)},
	}
}
