package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/cli"
	"github.com/Veraticus/zakat-ledger/internal/storage"
	"github.com/Veraticus/zakat-ledger/internal/workbook"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the record store if it does not exist",
		Long: `Create the SQLite schema (with the default rice prices) or the three
header-only workbooks. Existing records are left untouched, so running it
again is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var location string
			switch s := store.(type) {
			case *storage.SQLiteStorage:
				location = s.Path()
			case *workbook.Store:
				location = strings.Join(s.Paths(), ", ")
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s store ready: %s", store.Backend(), location)))
			return nil
		},
	}
}
