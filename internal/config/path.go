// Package config loads the ledger configuration from file, environment and flags.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ and $VAR references in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
