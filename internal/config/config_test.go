package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/zakat-ledger/internal/common"
	"github.com/Veraticus/zakat-ledger/internal/export"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, values map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	Bind(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t, nil))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "zakat.db", cfg.Database.Path)
	assert.Equal(t, ".", cfg.Workbook.Dir)
	assert.Equal(t, "zakat_data.xlsx", cfg.Workbook.PayersFile)
	assert.Equal(t, "master_beras.xlsx", cfg.Workbook.RiceFile)
	assert.Equal(t, "transaksi_zakat.xlsx", cfg.Workbook.TransactionsFile)
	assert.Equal(t, export.NamingFixed, cfg.Export.Naming)
	assert.True(t, cfg.Export.IncludeTransactions)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_BackendExportDefaults(t *testing.T) {
	tests := []struct {
		values      map[string]any
		name        string
		wantNaming  export.Naming
		wantInclude bool
	}{
		{
			name:        "xlsx defaults",
			values:      map[string]any{"backend": "XLSX"},
			wantNaming:  export.NamingTimestamped,
			wantInclude: false,
		},
		{
			name:        "xlsx overridden",
			values:      map[string]any{"backend": "xlsx", "export.naming": "fixed", "export.include_transactions": "true"},
			wantNaming:  export.NamingFixed,
			wantInclude: true,
		},
		{
			name:        "sqlite overridden",
			values:      map[string]any{"export.naming": "timestamped", "export.include_transactions": false},
			wantNaming:  export.NamingTimestamped,
			wantInclude: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newViper(t, tt.values))
			require.NoError(t, err)
			assert.Equal(t, tt.wantNaming, cfg.Export.Naming)
			assert.Equal(t, tt.wantInclude, cfg.Export.IncludeTransactions)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		values map[string]any
		name   string
	}{
		{name: "unknown backend", values: map[string]any{"backend": "mysql"}},
		{name: "unknown naming", values: map[string]any{"export.naming": "daily"}},
		{name: "bad include flag", values: map[string]any{"export.include_transactions": "sometimes"}},
		{name: "empty database path", values: map[string]any{"database.path": " "}},
		{name: "bad log level", values: map[string]any{"logging.level": "loud"}},
		{name: "bad log format", values: map[string]any{"logging.format": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.values))
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("ZAKAT_BACKEND", "xlsx")
	t.Setenv("ZAKAT_WORKBOOK_DIR", "/srv/zakat")
	t.Setenv("ZAKAT_LOGGING_LEVEL", "debug")

	cfg, err := Load(newViper(t, nil))
	require.NoError(t, err)
	assert.Equal(t, BackendXLSX, cfg.Backend)
	assert.Equal(t, "/srv/zakat", cfg.Workbook.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: xlsx
workbook:
  dir: data
  payers_file: payers.xlsx
export:
  include_transactions: true
`), 0600))

	v := newViper(t, nil)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Workbook.Dir)
	assert.Equal(t, "payers.xlsx", cfg.Workbook.PayersFile)
	assert.Equal(t, "master_beras.xlsx", cfg.Workbook.RiceFile)
	assert.Equal(t, export.NamingTimestamped, cfg.Export.Naming)
	assert.True(t, cfg.Export.IncludeTransactions)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("ZAKAT_TEST_DIR", "/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/zakat.db", want: filepath.Join(home, "zakat.db")},
		{input: "$ZAKAT_TEST_DIR/zakat.db", want: "/data/zakat.db"},
		{input: "relative/zakat.db", want: "relative/zakat.db"},
		{input: "~other/zakat.db", want: "~other/zakat.db"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
