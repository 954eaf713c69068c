// Package export writes the payer list and the transaction view to xlsx files.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
	"github.com/Veraticus/zakat-ledger/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/xuri/excelize/v2"
)

// Naming selects how export files are named.
type Naming string

// Naming policies.
const (
	// NamingFixed overwrites the same files on every run.
	NamingFixed Naming = "fixed"
	// NamingTimestamped adds the export time to the file names.
	NamingTimestamped Naming = "timestamped"
)

const timestampLayout = "20060102_150405"

// ErrUnknownNaming is returned for a naming policy other than fixed or timestamped.
var ErrUnknownNaming = errors.New("unknown export naming policy")

// Valid reports whether n is a known policy.
func (n Naming) Valid() bool {
	return n == NamingFixed || n == NamingTimestamped
}

// Options configures an Exporter.
type Options struct {
	// Progress receives the progress bar. Nil disables it.
	Progress            io.Writer
	Now                 func() time.Time
	Dir                 string
	Naming              Naming
	IncludeTransactions bool
}

// Result describes a finished export.
type Result struct {
	Files        []string
	Payers       int
	Transactions int
}

// Exporter copies store rows into new workbooks.
type Exporter struct {
	source service.ExportSource
	opts   Options
}

// New creates an exporter reading from source.
func New(source service.ExportSource, opts Options) (*Exporter, error) {
	if source == nil {
		return nil, fmt.Errorf("export source is required")
	}
	if !opts.Naming.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNaming, opts.Naming)
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	return &Exporter{source: source, opts: opts}, nil
}

// FileNames returns the payer and transaction file names for a policy.
func FileNames(naming Naming, at time.Time) (payers, transactions string) {
	if naming == NamingTimestamped {
		suffix := at.Format(timestampLayout)
		return "data_zakat_export_" + suffix + ".xlsx", "data_transaksi_zakat_export_" + suffix + ".xlsx"
	}
	return "data_zakat.xlsx", "data_transaksi_zakat.xlsx"
}

// Export writes the payer file and, when enabled, the transaction view file.
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	payers, err := e.source.ListPayers(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read payers: %w", err)
	}
	if len(payers) == 0 && e.opts.Naming == NamingTimestamped {
		return Result{}, common.ErrNothingToExport
	}

	var views []model.TransactionView
	if e.opts.IncludeTransactions {
		views, err = e.source.ListTransactionViews(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read transactions: %w", err)
		}
	}

	payerFile, txnFile := FileNames(e.opts.Naming, e.opts.Now())
	var bar *progressbar.ProgressBar
	if total := len(payers) + len(views); total > 0 {
		bar = e.newProgressBar(total)
		defer func() {
			if err := bar.Finish(); err != nil {
				slog.Warn("Failed to finish progress bar", "error", err)
			}
		}()
	}

	result := Result{Payers: len(payers), Transactions: len(views)}

	path := filepath.Join(e.opts.Dir, payerFile)
	if err := e.write(path, "Data Zakat", payerHeader, payerRows(payers), bar); err != nil {
		return result, err
	}
	result.Files = append(result.Files, path)

	if e.opts.IncludeTransactions {
		path = filepath.Join(e.opts.Dir, txnFile)
		if err := e.write(path, "Transaksi Zakat", viewHeader, viewRows(views), bar); err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
	}

	slog.Info("Export complete", "files", result.Files, "payers", result.Payers, "transactions", result.Transactions)
	return result, nil
}

var (
	payerHeader = []any{"ID", "Nama", "Jenis Zakat", "Jumlah", "Tanggal"}
	viewHeader  = []any{"ID", "Nama", "Jenis Zakat", "Beras", "Jumlah Beras", "Total Harga", "Tanggal"}
)

func payerRows(payers []model.Payer) [][]any {
	rows := make([][]any, 0, len(payers))
	for _, p := range payers {
		rows = append(rows, []any{p.ID, p.Name, string(p.Category), p.Amount.InexactFloat64(), p.Date.String()})
	}
	return rows
}

func viewRows(views []model.TransactionView) [][]any {
	rows := make([][]any, 0, len(views))
	for _, v := range views {
		rows = append(rows, []any{
			v.ID, v.PayerName, v.Category, v.RiceName,
			v.QuantityKg.InexactFloat64(), v.Total.InexactFloat64(), v.Date.String(),
		})
	}
	return rows
}

func (e *Exporter) write(path, sheetName string, header []any, rows [][]any, bar *progressbar.ProgressBar) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close workbook", "path", path, "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%s: %w: %w", path, common.ErrFileLocked, err)
		}
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(e.opts.Progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Exporting rows...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(e.opts.Progress); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
