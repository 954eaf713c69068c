package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidatePayer(t *testing.T) {
	valid := Payer{
		Name:     "Ahmad",
		Category: CategoryFitrah,
		Amount:   decimal.NewFromInt(50000),
		Date:     NewDate(2024, time.March, 20),
	}

	tests := []struct {
		mutate  func(p *Payer)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *Payer) {}},
		{name: "blank name", mutate: func(p *Payer) { p.Name = "   " }, wantErr: true},
		{name: "free text category", mutate: func(p *Payer) { p.Category = "Maal" }, wantErr: true},
		{name: "zero amount", mutate: func(p *Payer) { p.Amount = decimal.Zero }, wantErr: true},
		{name: "negative amount", mutate: func(p *Payer) { p.Amount = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "missing date", mutate: func(p *Payer) { p.Date = Date{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := ValidatePayer(p)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayer)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRice(t *testing.T) {
	assert.NoError(t, ValidateRice(Rice{Name: "Beras Premium", PricePerKg: decimal.NewFromInt(15000)}))
	assert.ErrorIs(t, ValidateRice(Rice{Name: "", PricePerKg: decimal.NewFromInt(15000)}), ErrInvalidRice)
	assert.ErrorIs(t, ValidateRice(Rice{Name: "Beras", PricePerKg: decimal.Zero}), ErrInvalidRice)
}

func TestValidateNewTransaction(t *testing.T) {
	valid := NewTransaction{
		PayerID:    1,
		RiceID:     1,
		QuantityKg: decimal.RequireFromString("2.5"),
		Date:       NewDate(2024, time.March, 21),
	}
	assert.NoError(t, ValidateNewTransaction(valid))

	noPayer := valid
	noPayer.PayerID = 0
	assert.ErrorIs(t, ValidateNewTransaction(noPayer), ErrInvalidTransaction)

	noQuantity := valid
	noQuantity.QuantityKg = decimal.Zero
	assert.ErrorIs(t, ValidateNewTransaction(noQuantity), ErrInvalidTransaction)
}

func TestTotalFor(t *testing.T) {
	total := TotalFor(decimal.NewFromInt(15000), decimal.RequireFromString("2.5"))
	assert.True(t, total.Equal(decimal.NewFromInt(37500)), "got %s", total)
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryFitrah.Valid())
	assert.True(t, CategoryMal.Valid())
	assert.False(t, Category("fitrah").Valid())
	assert.Len(t, Categories(), 2)
}
