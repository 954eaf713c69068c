package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/cli"
	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/config"
	"github.com/Veraticus/zakat-ledger/internal/export"
	"github.com/Veraticus/zakat-ledger/internal/service"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		dir    string
		naming string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export payers (and transactions) to xlsx",
		Long: `Write the payer list, and for the SQLite store the transaction view, to
new xlsx files. Naming and contents default per backend and can be changed
with export.naming and export.include_transactions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := *cfg
			if dir != "" {
				c.Export.Dir = config.ExpandPath(dir)
			}
			if naming != "" {
				c.Export.Naming = export.Naming(strings.ToLower(naming))
				if err := c.Validate(); err != nil {
					return err
				}
			}

			store, err := openStore(cmd.Context(), &c)
			if err != nil {
				return err
			}
			return runExport(cmd.Context(), cmd.OutOrStdout(), &c, store)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from export.dir)")
	cmd.Flags().StringVar(&naming, "naming", "", "file naming: fixed or timestamped")

	return cmd
}

func runExport(ctx context.Context, w io.Writer, c *config.Config, store service.ExportSource) error {
	exporter, err := newExporter(c, store, os.Stderr)
	if err != nil {
		return err
	}

	result, err := exporter.Export(ctx)
	if err != nil {
		return common.NewUserError(common.UserMessage(err, "Failed to export data!"), err)
	}

	if _, err := io.WriteString(w, cli.FormatSuccess("Data exported to:")+"\n"); err != nil {
		return err
	}
	for _, f := range result.Files {
		if _, err := io.WriteString(w, "  - "+f+"\n"); err != nil {
			return err
		}
	}
	return nil
}
