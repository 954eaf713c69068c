// Package storetest provides the behavioral suite every service.Store
// implementation must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
	"github.com/Veraticus/zakat-ledger/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store. RunContract calls Init itself.
type Factory func(t *testing.T) service.Store

// RunContract runs the shared store behavior tests against newStore.
func RunContract(t *testing.T, newStore Factory) {
	t.Helper()

	tests := []struct {
		run  func(t *testing.T, store service.Store)
		name string
	}{
		{name: "payer round trip", run: testPayerRoundTrip},
		{name: "next id is max plus one", run: testNextID},
		{name: "update payer", run: testUpdatePayer},
		{name: "update missing payer", run: testUpdateMissingPayer},
		{name: "invalid payer rejected", run: testInvalidPayerRejected},
		{name: "delete unreferenced payer", run: testDeleteUnreferencedPayer},
		{name: "delete referenced payer", run: testDeleteReferencedPayer},
		{name: "delete missing payer", run: testDeleteMissingPayer},
		{name: "rice append only list", run: testRiceList},
		{name: "transaction unknown payer", run: testTransactionUnknownPayer},
		{name: "transaction unknown rice", run: testTransactionUnknownRice},
		{name: "transaction total", run: testTransactionTotal},
		{name: "transaction view", run: testTransactionView},
		{name: "init is idempotent", run: testInitIdempotent},
		{name: "redemption scenario", run: testRedemptionScenario},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			require.NoError(t, store.Init(context.Background()))
			tt.run(t, store)
		})
	}
}

// NewPayer returns a valid payer fixture.
func NewPayer(name string, category model.Category, amount string, date string) model.Payer {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.Payer{
		Name:     name,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     d,
	}
}

// EnsureRice makes sure the price list starts with the default rows, seeding
// them when the store starts empty.
func EnsureRice(t *testing.T, store service.Store) []model.Rice {
	t.Helper()
	ctx := context.Background()

	list, err := store.ListRice(ctx)
	require.NoError(t, err)
	if len(list) > 0 {
		return list
	}

	for _, rice := range model.DefaultRice() {
		added, err := store.AddRice(ctx, rice)
		require.NoError(t, err)
		list = append(list, added)
	}
	return list
}

// AssertDecimal compares a decimal against its expected string form by value.
func AssertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func testPayerRoundTrip(t *testing.T, store service.Store) {
	ctx := context.Background()

	in := NewPayer("  Ahmad  ", model.CategoryFitrah, "50000", "2024-03-20")
	added, err := store.AddPayer(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), added.ID)

	got, err := store.GetPayer(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ahmad", got.Name)
	assert.Equal(t, model.CategoryFitrah, got.Category)
	AssertDecimal(t, "50000", got.Amount)
	assert.Equal(t, "2024-03-20", got.Date.String())

	frac, err := store.AddPayer(ctx, NewPayer("Siti", model.CategoryMal, "1250000.75", "2024-02-29"))
	require.NoError(t, err)

	got, err = store.GetPayer(ctx, frac.ID)
	require.NoError(t, err)
	AssertDecimal(t, "1250000.75", got.Amount)
	assert.Equal(t, "2024-02-29", got.Date.String())

	_, err = store.GetPayer(ctx, 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testNextID(t *testing.T, store service.Store) {
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		p, err := store.AddPayer(ctx, NewPayer(name, model.CategoryMal, "1000", "2024-01-01"))
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), p.ID)
	}

	// Removing the highest ID frees it again.
	require.NoError(t, store.DeletePayer(ctx, 3))
	p, err := store.AddPayer(ctx, NewPayer("D", model.CategoryMal, "1000", "2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	// Gaps below the maximum are not reused.
	require.NoError(t, store.DeletePayer(ctx, 2))
	p, err = store.AddPayer(ctx, NewPayer("E", model.CategoryMal, "1000", "2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)

	payers, err := store.ListPayers(ctx)
	require.NoError(t, err)
	ids := make([]int64, 0, len(payers))
	for _, p := range payers {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, ids)
}

func testUpdatePayer(t *testing.T, store service.Store) {
	ctx := context.Background()

	p, err := store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)
	other, err := store.AddPayer(ctx, NewPayer("Budi", model.CategoryMal, "75000", "2024-03-22"))
	require.NoError(t, err)

	p.Name = "Ahmad Fauzi"
	p.Category = model.CategoryMal
	p.Amount = decimal.RequireFromString("62500.5")
	p.Date = model.NewDate(2024, time.April, 1)
	require.NoError(t, store.UpdatePayer(ctx, p))

	got, err := store.GetPayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ahmad Fauzi", got.Name)
	assert.Equal(t, model.CategoryMal, got.Category)
	AssertDecimal(t, "62500.5", got.Amount)
	assert.Equal(t, "2024-04-01", got.Date.String())

	untouched, err := store.GetPayer(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", untouched.Name)
	AssertDecimal(t, "75000", untouched.Amount)
}

func testUpdateMissingPayer(t *testing.T, store service.Store) {
	ctx := context.Background()

	_, err := store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)

	missing := NewPayer("Nobody", model.CategoryMal, "1", "2024-01-01")
	missing.ID = 42
	err = store.UpdatePayer(ctx, missing)
	assert.ErrorIs(t, err, common.ErrNotFound)

	payers, err := store.ListPayers(ctx)
	require.NoError(t, err)
	require.Len(t, payers, 1)
	assert.Equal(t, "Ahmad", payers[0].Name)
}

func testInvalidPayerRejected(t *testing.T, store service.Store) {
	ctx := context.Background()

	_, err := store.AddPayer(ctx, NewPayer("Ahmad", "Maal", "50000", "2024-03-20"))
	assert.ErrorIs(t, err, model.ErrInvalidPayer)

	_, err = store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryMal, "0", "2024-03-20"))
	assert.ErrorIs(t, err, model.ErrInvalidPayer)

	_, err = store.AddPayer(ctx, NewPayer("   ", model.CategoryMal, "10", "2024-03-20"))
	assert.ErrorIs(t, err, model.ErrInvalidPayer)

	payers, err := store.ListPayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, payers)
}

func testDeleteUnreferencedPayer(t *testing.T, store service.Store) {
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := store.AddPayer(ctx, NewPayer(name, model.CategoryFitrah, "1000", "2024-01-01"))
		require.NoError(t, err)
	}

	require.NoError(t, store.DeletePayer(ctx, 2))

	payers, err := store.ListPayers(ctx)
	require.NoError(t, err)
	require.Len(t, payers, 2)
	assert.Equal(t, "A", payers[0].Name)
	assert.Equal(t, "C", payers[1].Name)

	_, err = store.GetPayer(ctx, 2)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testDeleteReferencedPayer(t *testing.T, store service.Store) {
	ctx := context.Background()
	rice := EnsureRice(t, store)

	p, err := store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)
	_, err = store.AddTransaction(ctx, model.NewTransaction{
		PayerID:    p.ID,
		RiceID:     rice[0].ID,
		QuantityKg: decimal.NewFromInt(1),
		Date:       model.NewDate(2024, time.March, 21),
	})
	require.NoError(t, err)

	err = store.DeletePayer(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrPayerReferenced)

	payers, err := store.ListPayers(ctx)
	require.NoError(t, err)
	require.Len(t, payers, 1)
	assert.Equal(t, p.ID, payers[0].ID)
}

func testDeleteMissingPayer(t *testing.T, store service.Store) {
	err := store.DeletePayer(context.Background(), 7)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testRiceList(t *testing.T, store service.Store) {
	ctx := context.Background()
	before := EnsureRice(t, store)

	added, err := store.AddRice(ctx, model.Rice{Name: " Beras Merah ", PricePerKg: decimal.RequireFromString("18500.5")})
	require.NoError(t, err)
	assert.Equal(t, before[len(before)-1].ID+1, added.ID)
	assert.Equal(t, "Beras Merah", added.Name)

	got, err := store.GetRice(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beras Merah", got.Name)
	AssertDecimal(t, "18500.5", got.PricePerKg)

	list, err := store.ListRice(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(before)+1)

	_, err = store.AddRice(ctx, model.Rice{Name: "Gratis", PricePerKg: decimal.Zero})
	assert.ErrorIs(t, err, model.ErrInvalidRice)

	_, err = store.GetRice(ctx, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testTransactionUnknownPayer(t *testing.T, store service.Store) {
	ctx := context.Background()
	rice := EnsureRice(t, store)

	_, err := store.AddTransaction(ctx, model.NewTransaction{
		PayerID:    99,
		RiceID:     rice[0].ID,
		QuantityKg: decimal.NewFromInt(2),
		Date:       model.NewDate(2024, time.March, 21),
	})
	assert.ErrorIs(t, err, common.ErrUnknownPayer)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func testTransactionUnknownRice(t *testing.T, store service.Store) {
	ctx := context.Background()
	EnsureRice(t, store)

	p, err := store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)

	_, err = store.AddTransaction(ctx, model.NewTransaction{
		PayerID:    p.ID,
		RiceID:     99,
		QuantityKg: decimal.NewFromInt(2),
		Date:       model.NewDate(2024, time.March, 21),
	})
	assert.ErrorIs(t, err, common.ErrUnknownRice)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func testTransactionTotal(t *testing.T, store service.Store) {
	ctx := context.Background()

	rice, err := store.AddRice(ctx, model.Rice{Name: "Beras Pandan Wangi", PricePerKg: decimal.RequireFromString("13750.25")})
	require.NoError(t, err)
	p, err := store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)

	txn, err := store.AddTransaction(ctx, model.NewTransaction{
		PayerID:    p.ID,
		RiceID:     rice.ID,
		QuantityKg: decimal.RequireFromString("3.5"),
		Date:       model.NewDate(2024, time.March, 21),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), txn.ID)
	AssertDecimal(t, "48125.875", txn.Total)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, p.ID, txns[0].PayerID)
	assert.Equal(t, rice.ID, txns[0].RiceID)
	AssertDecimal(t, "3.5", txns[0].QuantityKg)
	AssertDecimal(t, "48125.875", txns[0].Total)
	assert.Equal(t, "2024-03-21", txns[0].Date.String())
}

func testTransactionView(t *testing.T, store service.Store) {
	ctx := context.Background()
	rice := EnsureRice(t, store)

	a, err := store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)
	b, err := store.AddPayer(ctx, NewPayer("Siti", model.CategoryMal, "90000", "2024-03-20"))
	require.NoError(t, err)

	for _, in := range []model.NewTransaction{
		{PayerID: a.ID, RiceID: rice[0].ID, QuantityKg: decimal.NewFromInt(1), Date: model.NewDate(2024, time.March, 21)},
		{PayerID: b.ID, RiceID: rice[1].ID, QuantityKg: decimal.NewFromInt(2), Date: model.NewDate(2024, time.March, 22)},
	} {
		_, err := store.AddTransaction(ctx, in)
		require.NoError(t, err)
	}

	views, err := store.ListTransactionViews(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, "Ahmad", views[0].PayerName)
	assert.Equal(t, "Fitrah", views[0].Category)
	assert.Equal(t, rice[0].Name, views[0].RiceName)

	assert.Equal(t, "Siti", views[1].PayerName)
	assert.Equal(t, "Mal", views[1].Category)
	assert.Equal(t, rice[1].Name, views[1].RiceName)
	AssertDecimal(t, "2", views[1].QuantityKg)
	assert.True(t, rice[1].PricePerKg.Mul(decimal.NewFromInt(2)).Equal(views[1].Total))
	assert.Equal(t, "2024-03-22", views[1].Date.String())
}

func testInitIdempotent(t *testing.T, store service.Store) {
	ctx := context.Background()
	rice := EnsureRice(t, store)

	_, err := store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)

	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.Init(ctx))

	payers, err := store.ListPayers(ctx)
	require.NoError(t, err)
	assert.Len(t, payers, 1)

	after, err := store.ListRice(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(rice))
}

func testRedemptionScenario(t *testing.T, store service.Store) {
	ctx := context.Background()
	rice := EnsureRice(t, store)
	require.Equal(t, int64(1), rice[0].ID)
	require.Equal(t, "Beras Premium", rice[0].Name)
	AssertDecimal(t, "15000", rice[0].PricePerKg)

	p, err := store.AddPayer(ctx, NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)

	txn, err := store.AddTransaction(ctx, model.NewTransaction{
		PayerID:    1,
		RiceID:     1,
		QuantityKg: decimal.RequireFromString("2.5"),
		Date:       model.NewDate(2024, time.March, 21),
	})
	require.NoError(t, err)
	assert.Equal(t, "37500.00", txn.Total.StringFixed(2))

	err = store.DeletePayer(ctx, 1)
	assert.ErrorIs(t, err, common.ErrPayerReferenced)
}
