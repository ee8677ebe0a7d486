package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xcke/bytesafe/bytebuf"
	"github.com/xcke/bytesafe/internal/audit"
	"github.com/xcke/bytesafe/internal/config"
)

// loadConfig loads the merged configuration starting from the current
// working directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, _, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// auditLogger returns a logger for the audit database, or nil when
// auditing is disabled in the config.
func auditLogger(cfg *config.Config) *audit.Logger {
	if !cfg.Audit {
		return nil
	}
	dir := config.GlobalConfigDir()
	if dir == "" {
		return nil
	}
	return audit.NewLogger(filepath.Join(dir, audit.DefaultFileName))
}

// logAudit records an entry if the logger is enabled. Audit failures are
// returned so callers can warn without aborting the operation that
// already happened.
func logAudit(l *audit.Logger, e audit.Entry) error {
	if l == nil {
		return nil
	}
	defer l.Close()
	return l.Log(e)
}

// parseHexArg parses a command-line hex operand into a buffer, wrapping
// the error with the argument's position for multi-operand commands.
func parseHexArg(arg string, position int) (bytebuf.Buffer, error) {
	b, err := bytebuf.FromHex(arg)
	if err != nil {
		return bytebuf.Buffer{}, fmt.Errorf("operand %d: %w", position, err)
	}
	return b, nil
}
