package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xcke/bytesafe/internal/audit"
	"github.com/xcke/bytesafe/internal/config"
)

// newAuditCmd creates the audit subcommand.
func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recorded destructive operations",
		Long: `Print the audit log of destructive operations (file wipes, purged
shrinks, seals, key removals), oldest first. The log lives alongside
the global config and is written unless disabled in .bytesafe.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd)
		},
	}
	return cmd
}

// runAudit prints the audit entries in a tab-aligned table.
func runAudit(cmd *cobra.Command) error {
	dir := config.GlobalConfigDir()
	if dir == "" {
		return fmt.Errorf("no config directory available for the audit log")
	}

	logger := audit.NewLogger(filepath.Join(dir, audit.DefaultFileName))
	defer logger.Close()

	entries, err := logger.Read()
	if err != nil {
		return fmt.Errorf("reading audit log: %w", err)
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "audit log is empty")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIMESTAMP\tUSER\tOPERATION\tTARGET\tDETAIL")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Timestamp, e.User, e.Operation, e.Target, e.Detail)
	}
	return tw.Flush()
}
