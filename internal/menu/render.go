package menu

import (
	"fmt"
	"io"

	"github.com/Veraticus/zakat-ledger/internal/cli"
	"github.com/Veraticus/zakat-ledger/internal/model"
)

// RenderPayers writes the payer table, or a hint when there are none.
func RenderPayers(w io.Writer, payers []model.Payer) error {
	if len(payers) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No payer records yet."))
		return err
	}

	table, err := cli.NewTable(w, "ID", "Nama", "Jenis Zakat", "Jumlah", "Tanggal")
	if err != nil {
		return err
	}
	for _, p := range payers {
		if err := table.Row(
			fmt.Sprint(p.ID), p.Name, string(p.Category), cli.FormatRupiah(p.Amount), p.Date.String(),
		); err != nil {
			return err
		}
	}
	return table.Flush()
}

// RenderRice writes the rice price list.
func RenderRice(w io.Writer, rice []model.Rice) error {
	if len(rice) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No rice prices yet."))
		return err
	}

	table, err := cli.NewTable(w, "ID", "Nama Beras", "Harga per Kg")
	if err != nil {
		return err
	}
	for _, r := range rice {
		if err := table.Row(fmt.Sprint(r.ID), r.Name, cli.FormatRupiah(r.PricePerKg)); err != nil {
			return err
		}
	}
	return table.Flush()
}

// RenderTransactions writes the joined transaction view.
func RenderTransactions(w io.Writer, views []model.TransactionView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No transactions yet."))
		return err
	}

	table, err := cli.NewTable(w, "ID", "Nama", "Jenis Zakat", "Beras", "Jumlah (kg)", "Total Harga", "Tanggal")
	if err != nil {
		return err
	}
	for _, v := range views {
		if err := table.Row(
			fmt.Sprint(v.ID), v.PayerName, v.Category, v.RiceName,
			v.QuantityKg.String(), cli.FormatRupiah(v.Total), v.Date.String(),
		); err != nil {
			return err
		}
	}
	return table.Flush()
}
