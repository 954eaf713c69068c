package export

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeSource struct {
	payersErr error
	payers    []model.Payer
	views     []model.TransactionView
	viewCalls int
}

func (f *fakeSource) ListPayers(_ context.Context) ([]model.Payer, error) {
	return f.payers, f.payersErr
}

func (f *fakeSource) ListTransactionViews(_ context.Context) ([]model.TransactionView, error) {
	f.viewCalls++
	return f.views, nil
}

func sampleSource() *fakeSource {
	return &fakeSource{
		payers: []model.Payer{
			{ID: 1, Name: "Ahmad", Category: model.CategoryFitrah, Amount: decimal.NewFromInt(50000), Date: model.NewDate(2024, time.March, 20)},
			{ID: 3, Name: "Siti", Category: model.CategoryMal, Amount: decimal.RequireFromString("1250000.75"), Date: model.NewDate(2024, time.March, 21)},
		},
		views: []model.TransactionView{
			{
				ID: 1, PayerName: "Ahmad", Category: "Fitrah", RiceName: "Beras Premium",
				QuantityKg: decimal.RequireFromString("2.5"), Total: decimal.NewFromInt(37500),
				Date: model.NewDate(2024, time.March, 21),
			},
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 22, 14, 5, 9, 0, time.Local)
}

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func TestFileNames(t *testing.T) {
	payers, txns := FileNames(NamingFixed, fixedClock())
	assert.Equal(t, "data_zakat.xlsx", payers)
	assert.Equal(t, "data_transaksi_zakat.xlsx", txns)

	payers, txns = FileNames(NamingTimestamped, fixedClock())
	assert.Equal(t, "data_zakat_export_20240322_140509.xlsx", payers)
	assert.Equal(t, "data_transaksi_zakat_export_20240322_140509.xlsx", txns)
}

func TestNew_RejectsUnknownNaming(t *testing.T) {
	_, err := New(sampleSource(), Options{Naming: "daily"})
	assert.ErrorIs(t, err, ErrUnknownNaming)

	_, err = New(nil, Options{Naming: NamingFixed})
	assert.Error(t, err)
}

func TestExport_FixedWithTransactions(t *testing.T) {
	dir := t.TempDir()
	src := sampleSource()
	var progress bytes.Buffer

	exp, err := New(src, Options{Dir: dir, Naming: NamingFixed, IncludeTransactions: true, Progress: &progress, Now: fixedClock})
	require.NoError(t, err)

	result, err := exp.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Payers)
	assert.Equal(t, 1, result.Transactions)
	require.Equal(t, []string{
		filepath.Join(dir, "data_zakat.xlsx"),
		filepath.Join(dir, "data_transaksi_zakat.xlsx"),
	}, result.Files)
	assert.NotEmpty(t, progress.String())

	assert.Equal(t, [][]string{
		{"ID", "Nama", "Jenis Zakat", "Jumlah", "Tanggal"},
		{"1", "Ahmad", "Fitrah", "50000", "2024-03-20"},
		{"3", "Siti", "Mal", "1250000.75", "2024-03-21"},
	}, readSheet(t, result.Files[0]))

	assert.Equal(t, [][]string{
		{"ID", "Nama", "Jenis Zakat", "Beras", "Jumlah Beras", "Total Harga", "Tanggal"},
		{"1", "Ahmad", "Fitrah", "Beras Premium", "2.5", "37500", "2024-03-21"},
	}, readSheet(t, result.Files[1]))

	// Fixed names are overwritten on the next run.
	src.payers = src.payers[:1]
	_, err = exp.Export(context.Background())
	require.NoError(t, err)
	assert.Len(t, readSheet(t, result.Files[0]), 2)
}

func TestExport_TimestampedPayersOnly(t *testing.T) {
	dir := t.TempDir()
	src := sampleSource()

	exp, err := New(src, Options{Dir: dir, Naming: NamingTimestamped, Now: fixedClock})
	require.NoError(t, err)

	result, err := exp.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "data_zakat_export_20240322_140509.xlsx")}, result.Files)
	assert.Zero(t, src.viewCalls)
	assert.FileExists(t, result.Files[0])
}

func TestExport_Empty(t *testing.T) {
	t.Run("timestamped refuses", func(t *testing.T) {
		exp, err := New(&fakeSource{}, Options{Dir: t.TempDir(), Naming: NamingTimestamped})
		require.NoError(t, err)

		_, err = exp.Export(context.Background())
		assert.ErrorIs(t, err, common.ErrNothingToExport)
		assert.Equal(t, "There is no payer data to export.", common.UserMessage(err, ""))
	})

	t.Run("fixed writes headers", func(t *testing.T) {
		exp, err := New(&fakeSource{}, Options{Dir: t.TempDir(), Naming: NamingFixed, IncludeTransactions: true})
		require.NoError(t, err)

		result, err := exp.Export(context.Background())
		require.NoError(t, err)
		require.Len(t, result.Files, 2)
		assert.Len(t, readSheet(t, result.Files[0]), 1)
		assert.Len(t, readSheet(t, result.Files[1]), 1)
	})
}

func TestExport_SourceError(t *testing.T) {
	boom := errors.New("database unavailable")
	exp, err := New(&fakeSource{payersErr: boom}, Options{Dir: t.TempDir(), Naming: NamingFixed})
	require.NoError(t, err)

	_, err = exp.Export(context.Background())
	assert.ErrorIs(t, err, boom)
}
