package main

import (
	"context"
	"io"

	"github.com/Veraticus/zakat-ledger/internal/menu"
	"github.com/Veraticus/zakat-ledger/internal/service"
	"github.com/spf13/cobra"
)

// lister prints one kind of record.
type lister func(ctx context.Context, w io.Writer, store service.Store) error

func listPayers(ctx context.Context, w io.Writer, store service.Store) error {
	payers, err := store.ListPayers(ctx)
	if err != nil {
		return err
	}
	return menu.RenderPayers(w, payers)
}

func listRice(ctx context.Context, w io.Writer, store service.Store) error {
	rice, err := store.ListRice(ctx)
	if err != nil {
		return err
	}
	return menu.RenderRice(w, rice)
}

func listTransactions(ctx context.Context, w io.Writer, store service.Store) error {
	views, err := store.ListTransactionViews(ctx)
	if err != nil {
		return err
	}
	return menu.RenderTransactions(w, views)
}

func listCmd(short string, list lister) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return list(cmd.Context(), cmd.OutOrStdout(), store)
		},
	}
}

func payersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payers",
		Short: "Inspect zakat payers",
	}
	cmd.AddCommand(listCmd("List zakat payers", listPayers))
	return cmd
}

func riceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rice",
		Short: "Inspect the rice price list",
	}
	cmd.AddCommand(listCmd("List rice prices", listRice))
	return cmd
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns"},
		Short:   "Inspect rice transactions",
	}
	cmd.AddCommand(listCmd("List rice transactions with payer and rice names", listTransactions))
	return cmd
}
