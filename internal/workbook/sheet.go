package workbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// cellKind decides how a stored string is typed when the sheet is written.
type cellKind int

const (
	kindText cellKind = iota
	kindInt
	kindNumber
)

// sheet describes one entity file.
type sheet struct {
	path   string
	name   string
	header []string
	kinds  []cellKind
}

// read returns the data rows of the file's active sheet as raw cell values,
// header excluded.
func (sh sheet) read() ([][]string, error) {
	f, err := excelize.OpenFile(sh.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", sh.path, fileError(sh.path, err))
	}
	defer f.Close()

	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", sh.path)
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// write replaces the file with a fresh workbook holding the header and rows.
// The workbook is written to a temporary file first and renamed into place,
// so a failure leaves the previous file as it was.
func (sh sheet) write(rows [][]string) (err error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(sh.header))
	for i, h := range sh.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := sh.typed(row)
		if err := f.SetSheetRow(sh.name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(sh.path), "."+filepath.Base(sh.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", fileError(sh.path, err))
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), sh.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", sh.path, fileError(sh.path, err))
	}
	return nil
}

// typed converts raw strings to cell values according to the column kinds.
// Values that do not parse are kept as text.
func (sh sheet) typed(row []string) []any {
	values := make([]any, len(row))
	for i, raw := range row {
		if raw == "" {
			values[i] = nil
			continue
		}

		kind := kindText
		if i < len(sh.kinds) {
			kind = sh.kinds[i]
		}

		switch kind {
		case kindInt:
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				values[i] = n
				continue
			}
		case kindNumber:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				values[i] = f
				continue
			}
		}
		values[i] = raw
	}
	return values
}

// fileError maps permission failures, which usually mean another program
// holds the file open, to common.ErrFileLocked.
func fileError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%s: %w: %w", path, common.ErrFileLocked, err)
	}
	return err
}

// cell returns column i of row, or "" when the row is shorter.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// parseID reads an identifier cell. Whole-number floats such as "3.0" are
// accepted since other spreadsheet tools may store IDs that way.
func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// rowID returns the identifier in the first column of row.
func rowID(row []string) (int64, bool) {
	return parseID(cell(row, 0))
}

// nextID scans the first column and returns one more than the largest
// numeric identifier, or 1 when there is none.
func nextID(rows [][]string) int64 {
	var maxID int64
	for _, row := range rows {
		if id, ok := rowID(row); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// parseDecimal reads a numeric cell.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// parseDate reads a date cell stored as YYYY-MM-DD text or, when the file was
// edited by hand, as an Excel serial date number.
func parseDate(s string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err == nil {
		return d, nil
	}
	serial, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return model.Date{}, err
	}
	t, terr := excelize.ExcelDateToTime(serial, false)
	if terr != nil {
		return model.Date{}, terr
	}
	return model.DateOf(t), nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
