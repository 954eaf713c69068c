package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/export"
	"github.com/Veraticus/zakat-ledger/internal/workbook"
	"github.com/spf13/viper"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendXLSX   = "xlsx"
)

// Config holds everything needed to build a store, the exporter and the logger.
type Config struct {
	Backend  string
	Database DatabaseConfig
	Logging  LoggingConfig
	Export   ExportConfig
	Workbook workbook.Config
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string
}

// ExportConfig controls the export files.
type ExportConfig struct {
	Dir                 string
	Naming              export.Naming
	IncludeTransactions bool
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Bind registers defaults and environment lookup (ZAKAT_BACKEND,
// ZAKAT_DATABASE_PATH, ...) on v.
func Bind(v *viper.Viper) {
	wb := workbook.DefaultConfig()

	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("database.path", "zakat.db")
	v.SetDefault("workbook.dir", wb.Dir)
	v.SetDefault("workbook.payers_file", wb.PayersFile)
	v.SetDefault("workbook.rice_file", wb.RiceFile)
	v.SetDefault("workbook.transactions_file", wb.TransactionsFile)
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.naming", "")
	v.SetDefault("export.include_transactions", "")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("ZAKAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from v. Export naming and the transaction file
// default per backend when left empty: sqlite writes fixed names with the
// transaction view, xlsx writes timestamped names with payers only.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Backend: strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		Workbook: workbook.Config{
			Dir:              ExpandPath(v.GetString("workbook.dir")),
			PayersFile:       v.GetString("workbook.payers_file"),
			RiceFile:         v.GetString("workbook.rice_file"),
			TransactionsFile: v.GetString("workbook.transactions_file"),
		},
		Export: ExportConfig{
			Dir:    ExpandPath(v.GetString("export.dir")),
			Naming: export.Naming(strings.ToLower(strings.TrimSpace(v.GetString("export.naming")))),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},
	}

	if cfg.Export.Naming == "" {
		cfg.Export.Naming = export.NamingFixed
		if cfg.Backend == BackendXLSX {
			cfg.Export.Naming = export.NamingTimestamped
		}
	}

	switch raw := strings.TrimSpace(v.GetString("export.include_transactions")); raw {
	case "":
		cfg.Export.IncludeTransactions = cfg.Backend != BackendXLSX
	default:
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: export.include_transactions %q", common.ErrInvalidConfig, raw)
		}
		cfg.Export.IncludeTransactions = include
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backends, naming policies and log settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("%w: database.path is required", common.ErrInvalidConfig)
		}
	case BackendXLSX:
	default:
		return fmt.Errorf("%w: backend must be %s or %s, got %q",
			common.ErrInvalidConfig, BackendSQLite, BackendXLSX, c.Backend)
	}

	if !c.Export.Naming.Valid() {
		return fmt.Errorf("%w: export.naming must be %s or %s, got %q",
			common.ErrInvalidConfig, export.NamingFixed, export.NamingTimestamped, c.Export.Naming)
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json", "":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
