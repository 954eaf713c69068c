package workbook

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
	"github.com/Veraticus/zakat-ledger/internal/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()

	store, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	return store
}

// writeRaw replaces a workbook with the given header and rows as typed cells.
func writeRaw(t *testing.T, path, sheetName string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheetName))
	for i, row := range rows {
		values := row
		require.NoError(t, f.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+1), &values))
	}
	require.NoError(t, f.SaveAs(path))
}

// readRaw returns every row of a workbook including the header.
func readRaw(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()), excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func TestNew(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		store, err := New(Config{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, Backend, store.Backend())
		assert.Equal(t, []string{
			filepath.Join(dir, "zakat_data.xlsx"),
			filepath.Join(dir, "master_beras.xlsx"),
			filepath.Join(dir, "transaksi_zakat.xlsx"),
		}, store.Paths())
		assert.DirExists(t, dir)
	})

	t.Run("rejects non-xlsx names", func(t *testing.T) {
		_, err := New(Config{Dir: t.TempDir(), PayersFile: "zakat.csv"})
		assert.Error(t, err)
	})
}

func TestInit(t *testing.T) {
	store := createTestStore(t)

	for _, path := range store.Paths() {
		assert.FileExists(t, path)
	}
	assert.Equal(t, [][]string{{"ID", "Nama", "Jenis Zakat", "Jumlah", "Tanggal"}}, readRaw(t, store.payers.path))
	assert.Equal(t, [][]string{{"ID", "Nama Beras", "Harga per Kg"}}, readRaw(t, store.rice.path))
	assert.Equal(t,
		[][]string{{"ID", "ID Zakat", "ID Beras", "Jumlah Beras", "Total Harga", "Tanggal"}},
		readRaw(t, store.transactions.path),
	)

	// The price list is not seeded on this backend.
	rice, err := store.ListRice(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rice)

	t.Run("keeps existing files", func(t *testing.T) {
		ctx := context.Background()
		_, err := store.AddPayer(ctx, storetest.NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
		require.NoError(t, err)

		require.NoError(t, store.Init(ctx))

		payers, err := store.ListPayers(ctx)
		require.NoError(t, err)
		assert.Len(t, payers, 1)
	})

	t.Run("recreates a missing file only", func(t *testing.T) {
		require.NoError(t, os.Remove(store.rice.path))
		require.NoError(t, store.Init(context.Background()))
		assert.FileExists(t, store.rice.path)

		payers, err := store.ListPayers(context.Background())
		require.NoError(t, err)
		assert.Len(t, payers, 1)
	})
}

func TestNextID_SkipsNonNumericCells(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	writeRaw(t, store.payers.path, "Zakat Data", [][]any{
		{"ID", "Nama", "Jenis Zakat", "Jumlah", "Tanggal"},
		{1, "Ahmad", "Fitrah", 50000, "2024-03-20"},
		{"abc", "Junk", "Mal", 1, "2024-03-20"},
		{5.0, "Budi", "Mal", 75000.5, "2024-03-21"},
		{nil, "Empty", "Mal", 1, "2024-03-20"},
	})

	payers, err := store.ListPayers(ctx)
	require.NoError(t, err)
	require.Len(t, payers, 2)
	assert.Equal(t, int64(5), payers[1].ID)
	storetest.AssertDecimal(t, "75000.5", payers[1].Amount)

	p, err := store.AddPayer(ctx, storetest.NewPayer("Citra", model.CategoryMal, "1000", "2024-03-22"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.ID)

	// Unreadable rows survive a rewrite.
	rows := readRaw(t, store.payers.path)
	assert.Len(t, rows, 6)
	assert.Equal(t, "abc", rows[2][0])
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want int64
	}{
		{name: "empty", rows: nil, want: 1},
		{name: "sequential", rows: [][]string{{"1"}, {"2"}}, want: 3},
		{name: "gap", rows: [][]string{{"1"}, {"7"}, {"3"}}, want: 8},
		{name: "float ids", rows: [][]string{{"2.0"}, {"4"}}, want: 5},
		{name: "junk ignored", rows: [][]string{{"x"}, {""}, {"2.5"}, {}}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextID(tt.rows))
		})
	}
}

func TestParseDate_SerialNumber(t *testing.T) {
	d, err := parseDate("2024-03-20")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-20", d.String())

	// 45371 is 2024-03-20 in the 1900 date system.
	d, err = parseDate("45371")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-20", d.String())

	_, err = parseDate("20/03/2024")
	assert.Error(t, err)
}

func TestFileError(t *testing.T) {
	locked := &fs.PathError{Op: "open", Path: "zakat_data.xlsx", Err: fs.ErrPermission}
	err := fileError("zakat_data.xlsx", locked)
	assert.ErrorIs(t, err, common.ErrFileLocked)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, "The file is in use. Close the Excel file first and try again.", common.UserMessage(err, "failed"))

	missing := &fs.PathError{Op: "open", Path: "zakat_data.xlsx", Err: fs.ErrNotExist}
	assert.NotErrorIs(t, fileError("zakat_data.xlsx", missing), common.ErrFileLocked)
}

func TestAddTransaction_TotalFixedAtInsertion(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()
	storetest.EnsureRice(t, store)

	p, err := store.AddPayer(ctx, storetest.NewPayer("Ahmad", model.CategoryFitrah, "50000", "2024-03-20"))
	require.NoError(t, err)
	_, err = store.AddTransaction(ctx, model.NewTransaction{
		PayerID:    p.ID,
		RiceID:     1,
		QuantityKg: decimal.RequireFromString("2.5"),
		Date:       model.NewDate(2024, time.March, 21),
	})
	require.NoError(t, err)

	// Edit the price by hand, the way a user would in a spreadsheet program.
	writeRaw(t, store.rice.path, "Master Beras", [][]any{
		{"ID", "Nama Beras", "Harga per Kg"},
		{1, "Beras Premium", 20000},
	})

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	storetest.AssertDecimal(t, "37500", txns[0].Total)
}

func TestListTransactionViews_UnknownReferences(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	writeRaw(t, store.transactions.path, "Transaksi Zakat", [][]any{
		{"ID", "ID Zakat", "ID Beras", "Jumlah Beras", "Total Harga", "Tanggal"},
		{1, 9, 9, 1.5, 18000, "2024-03-21"},
	})

	views, err := store.ListTransactionViews(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, model.UnknownName, views[0].PayerName)
	assert.Equal(t, model.UnknownName, views[0].Category)
	assert.Equal(t, model.UnknownName, views[0].RiceName)
	storetest.AssertDecimal(t, "1.5", views[0].QuantityKg)
	storetest.AssertDecimal(t, "18000", views[0].Total)
}

func TestStore_CanceledContext(t *testing.T) {
	store := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListPayers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.AddRice(ctx, model.Rice{Name: "Beras", PricePerKg: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Init(ctx), context.Canceled)
}

func TestStore_MissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()
	store, err := New(cfg)
	require.NoError(t, err)

	_, err = store.ListPayers(context.Background())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
