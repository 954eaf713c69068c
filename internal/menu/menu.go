// Package menu runs the numbered text menu over a record store.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/cli"
	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/export"
	"github.com/Veraticus/zakat-ledger/internal/input"
	"github.com/Veraticus/zakat-ledger/internal/model"
	"github.com/Veraticus/zakat-ledger/internal/service"
)

var (
	errPayerChoice = errors.New("payer ID is not in the list")
	errRiceChoice  = errors.New("rice ID is not in the list")
)

// Exporter writes the export files.
type Exporter interface {
	Export(ctx context.Context) (export.Result, error)
}

type action struct {
	run     func(ctx context.Context) error
	label   string
	failure string
}

// Menu dispatches numbered choices to store operations.
type Menu struct {
	store    service.Store
	exporter Exporter
	p        *cli.Prompter
	actions  []action
}

// New creates a menu. A nil exporter disables the export entry.
func New(store service.Store, exporter Exporter, prompter *cli.Prompter) *Menu {
	m := &Menu{
		store:    store,
		exporter: exporter,
		p:        prompter,
	}
	m.actions = []action{
		{label: "Add payer", failure: "Failed to save data!", run: m.addPayer},
		{label: "Edit payer", failure: "Failed to update data!", run: m.editPayer},
		{label: "Delete payer", failure: "Failed to delete data. Make sure it has no related transactions.", run: m.deletePayer},
		{label: "List payers", failure: "Failed to read payer data!", run: m.listPayers},
		{label: "List rice prices", failure: "Failed to read rice data!", run: m.listRice},
		{label: "Add rice price", failure: "Failed to add rice data!", run: m.addRice},
		{label: "Record rice transaction", failure: "Failed to create the transaction.", run: m.recordTransaction},
		{label: "List transactions", failure: "Failed to read transaction data!", run: m.listTransactions},
		{label: "Export to Excel", failure: "Failed to export data!", run: m.export},
	}
	return m
}

// Run shows the menu until the exit choice, end of input or cancellation.
func (m *Menu) Run(ctx context.Context) error {
	exit := len(m.actions) + 1
	for {
		m.showMenu()

		answer, err := m.p.Ask(ctx, fmt.Sprintf("Choose an option [1-%d]", exit))
		if err != nil {
			return m.stop(err)
		}

		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > exit {
			m.p.Println(cli.FormatError(fmt.Sprintf("Invalid choice. Choose 1-%d.", exit)))
			continue
		}

		if choice == exit {
			m.p.Println(cli.FormatInfo("Thank you for using the zakat ledger. Goodbye!"))
			return nil
		}

		if err := m.dispatch(ctx, m.actions[choice-1]); err != nil {
			return m.stop(err)
		}
	}
}

// stop turns end of input into a clean return.
func (m *Menu) stop(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, cli.ErrInputCancelled) {
		m.p.Println()
		return nil
	}
	return err
}

// dispatch runs one action. Store failures and panics are reported and
// swallowed; only input errors are returned.
func (m *Menu) dispatch(ctx context.Context, a action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Menu action panicked", "action", a.label, "panic", r)
			m.p.Println(cli.FormatError(fmt.Sprintf("%s: unexpected error: %v", a.failure, r)))
			err = nil
		}
	}()

	m.p.Println()
	m.p.Println(cli.FormatTitle(strings.ToUpper(a.label)))

	err = a.run(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, cli.ErrInputCancelled) {
		return err
	}

	common.LogError(err, "Menu action failed", common.Fields{"action": a.label})
	m.p.Println(cli.FormatError(common.UserMessage(err, a.failure)))
	return nil
}

func (m *Menu) showMenu() {
	var b strings.Builder
	for i, a := range m.actions {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, a.label)
	}
	fmt.Fprintf(&b, "%2d. Exit", len(m.actions)+1)

	m.p.Println()
	m.p.Println(cli.RenderBox("ZAKAT MANAGEMENT SYSTEM", b.String()))
}

func (m *Menu) addPayer(ctx context.Context) error {
	var (
		payer model.Payer
		err   error
	)
	if payer.Name, err = cli.Prompt(ctx, m.p, "Payer name", input.ParseNonEmpty); err != nil {
		return err
	}
	if payer.Category, err = cli.Prompt(ctx, m.p, "Zakat category (Fitrah/Mal)", input.ParseCategory); err != nil {
		return err
	}
	if payer.Amount, err = cli.Prompt(ctx, m.p, "Zakat amount (Rp)", input.ParsePositiveDecimal); err != nil {
		return err
	}
	if payer.Date, err = cli.Prompt(ctx, m.p, "Payment date (YYYY-MM-DD)", input.ParseDate); err != nil {
		return err
	}

	added, err := m.store.AddPayer(ctx, payer)
	if err != nil {
		return err
	}
	m.p.Println(cli.FormatSuccess(fmt.Sprintf("Data saved with ID %d.", added.ID)))
	return nil
}

func (m *Menu) editPayer(ctx context.Context) error {
	id, err := cli.Prompt(ctx, m.p, "ID of the payer to edit", input.ParseID)
	if err != nil {
		return err
	}

	current, err := m.store.GetPayer(ctx, id)
	if err != nil {
		return err
	}

	m.p.Println(cli.RenderBox("Current data", fmt.Sprintf(
		"Nama: %s\nJenis Zakat: %s\nJumlah: %s\nTanggal: %s",
		current.Name, current.Category, cli.FormatRupiah(current.Amount), current.Date,
	)))
	m.p.Println(cli.FormatInfo("Enter new values (leave empty to keep the current one):"))

	updated := current
	if updated.Name, err = cli.PromptOptional(ctx, m.p,
		fmt.Sprintf("Name [%s]", current.Name), current.Name, input.ParseNonEmpty); err != nil {
		return err
	}
	if updated.Category, err = cli.PromptOptional(ctx, m.p,
		fmt.Sprintf("Zakat category (Fitrah/Mal) [%s]", current.Category), current.Category, input.ParseCategory); err != nil {
		return err
	}
	if updated.Amount, err = cli.PromptOptional(ctx, m.p,
		fmt.Sprintf("Zakat amount (Rp) [%s]", current.Amount), current.Amount, input.ParsePositiveDecimal); err != nil {
		return err
	}
	if updated.Date, err = cli.PromptOptional(ctx, m.p,
		fmt.Sprintf("Payment date (YYYY-MM-DD) [%s]", current.Date), current.Date, input.ParseDate); err != nil {
		return err
	}

	if err := m.store.UpdatePayer(ctx, updated); err != nil {
		return err
	}
	m.p.Println(cli.FormatSuccess("Data updated."))
	return nil
}

func (m *Menu) deletePayer(ctx context.Context) error {
	id, err := cli.Prompt(ctx, m.p, "ID of the payer to delete", input.ParseID)
	if err != nil {
		return err
	}

	if err := m.store.DeletePayer(ctx, id); err != nil {
		return err
	}
	m.p.Println(cli.FormatSuccess("Data deleted."))
	return nil
}

func (m *Menu) listPayers(ctx context.Context) error {
	payers, err := m.store.ListPayers(ctx)
	if err != nil {
		return err
	}
	return RenderPayers(m.p.Writer(), payers)
}

func (m *Menu) listRice(ctx context.Context) error {
	rice, err := m.store.ListRice(ctx)
	if err != nil {
		return err
	}
	return RenderRice(m.p.Writer(), rice)
}

func (m *Menu) addRice(ctx context.Context) error {
	var (
		rice model.Rice
		err  error
	)
	if rice.Name, err = cli.Prompt(ctx, m.p, "Rice name", input.ParseNonEmpty); err != nil {
		return err
	}
	if rice.PricePerKg, err = cli.Prompt(ctx, m.p, "Price per kg (Rp)", input.ParsePositiveDecimal); err != nil {
		return err
	}

	added, err := m.store.AddRice(ctx, rice)
	if err != nil {
		return err
	}
	m.p.Println(cli.FormatSuccess(fmt.Sprintf("Rice added with ID %d.", added.ID)))
	return nil
}

// listed accepts only identifiers present in ids.
func listed(ids map[int64]bool, notListed error) func(string) (int64, error) {
	return func(s string) (int64, error) {
		id, err := input.ParseInt(s)
		if err != nil {
			return 0, err
		}
		if !ids[id] {
			return 0, notListed
		}
		return id, nil
	}
}

func (m *Menu) recordTransaction(ctx context.Context) error {
	payers, err := m.store.ListPayers(ctx)
	if err != nil {
		return err
	}
	if len(payers) == 0 {
		m.p.Println(cli.FormatWarning("No payer records yet. Add one first."))
		return nil
	}

	payerIDs := make(map[int64]bool, len(payers))
	names := make(map[int64]string, len(payers))
	m.p.Println("Payers:")
	for _, p := range payers {
		payerIDs[p.ID] = true
		names[p.ID] = p.Name
		m.p.Printf("  %d. %s\n", p.ID, p.Name)
	}

	var txn model.NewTransaction
	if txn.PayerID, err = cli.Prompt(ctx, m.p, "Choose payer ID", listed(payerIDs, errPayerChoice)); err != nil {
		return err
	}

	rice, err := m.store.ListRice(ctx)
	if err != nil {
		return err
	}
	if len(rice) == 0 {
		m.p.Println(cli.FormatWarning("No rice prices yet. Add one first."))
		return nil
	}

	riceIDs := make(map[int64]bool, len(rice))
	riceNames := make(map[int64]string, len(rice))
	m.p.Println("Rice:")
	for _, r := range rice {
		riceIDs[r.ID] = true
		riceNames[r.ID] = r.Name
		m.p.Printf("  %d. %s (%s/kg)\n", r.ID, r.Name, cli.FormatRupiah(r.PricePerKg))
	}

	if txn.RiceID, err = cli.Prompt(ctx, m.p, "Choose rice ID", listed(riceIDs, errRiceChoice)); err != nil {
		return err
	}
	if txn.QuantityKg, err = cli.Prompt(ctx, m.p, "Rice quantity (kg)", input.ParsePositiveDecimal); err != nil {
		return err
	}
	if txn.Date, err = cli.Prompt(ctx, m.p, "Transaction date (YYYY-MM-DD)", input.ParseDate); err != nil {
		return err
	}

	stored, err := m.store.AddTransaction(ctx, txn)
	if err != nil {
		return err
	}

	m.p.Println(cli.FormatSuccess("Transaction recorded!"))
	m.p.Println(cli.RenderBox("Transaction", fmt.Sprintf(
		"ID: %d\nPayer: %s\nRice: %s\nQuantity: %s kg\nTotal: %s\nDate: %s",
		stored.ID, names[stored.PayerID], riceNames[stored.RiceID],
		stored.QuantityKg, cli.FormatRupiah(stored.Total), stored.Date,
	)))
	return nil
}

func (m *Menu) listTransactions(ctx context.Context) error {
	views, err := m.store.ListTransactionViews(ctx)
	if err != nil {
		return err
	}
	return RenderTransactions(m.p.Writer(), views)
}

func (m *Menu) export(ctx context.Context) error {
	if m.exporter == nil {
		m.p.Println(cli.FormatWarning("Export is not configured."))
		return nil
	}

	result, err := m.exporter.Export(ctx)
	if err != nil {
		return err
	}

	m.p.Println(cli.FormatSuccess("Data exported to:"))
	for _, f := range result.Files {
		m.p.Printf("  - %s\n", f)
	}
	return nil
}
