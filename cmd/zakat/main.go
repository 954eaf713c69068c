package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/zakat-ledger/internal/cli"
	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/config"
	"github.com/Veraticus/zakat-ledger/internal/menu"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "zakat",
		Short: "🌾 Zakat payment and rice redemption ledger",
		Long: `zakat: a small ledger for zakat payers, a rice price list and the
transactions that redeem a payment into rice.

Records live in a SQLite database or in three xlsx workbooks.
Run without a subcommand to open the interactive menu.`,
		PersistentPreRunE: initConfig,
		RunE:              runMenu,
		SilenceUsage:      true,
	}
)

func init() {
	config.Bind(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/zakat/config.yaml)")
	rootCmd.PersistentFlags().String("backend", config.BackendSQLite, "record store (sqlite, xlsx)")
	rootCmd.PersistentFlags().String("db", "zakat.db", "SQLite database path")
	rootCmd.PersistentFlags().String("data-dir", ".", "directory holding the xlsx workbooks")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("workbook.dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(payersCmd())
	rootCmd.AddCommand(riceCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	ctx = handler.HandleInterrupts(ctx)

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/zakat", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := common.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	exporter, err := newExporter(cfg, store, os.Stderr)
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	return menu.New(store, exporter, prompter).Run(ctx)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zakat version %s\n", version)
		},
	}
}
