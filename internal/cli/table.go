package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatRupiah renders an amount with thousands separators and two
// decimals, e.g. Rp37,500.00.
func FormatRupiah(amount decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("Rp%.2f", amount.Round(2).InexactFloat64())
}

// Table writes tab-aligned rows under a styled header and a separator line.
type Table struct {
	w    *tabwriter.Writer
	cols int
}

// NewTable writes the header and separator and returns the table.
func NewTable(out io.Writer, headers ...string) (*Table, error) {
	t := &Table{
		w:    tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		cols: len(headers),
	}

	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = TableHeaderStyle.Render(h)
		rules[i] = strings.Repeat("─", max(len(h), 4))
	}

	if _, err := fmt.Fprintln(t.w, strings.Join(styled, "\t")); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(t.w, strings.Join(rules, "\t")); err != nil {
		return nil, fmt.Errorf("failed to write separator: %w", err)
	}
	return t, nil
}

// Row writes one row. Missing cells are left blank.
func (t *Table) Row(cells ...string) error {
	if len(cells) < t.cols {
		cells = append(cells, make([]string, t.cols-len(cells))...)
	}
	if _, err := fmt.Fprintln(t.w, strings.Join(cells, "\t")); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// Flush aligns and writes the buffered rows.
func (t *Table) Flush() error {
	return t.w.Flush()
}
