// Package cmd defines the CLI commands for bytesafe.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// exitError wraps an exit code so the caller can propagate it.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// NewRootCmd creates the root command for bytesafe.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bytesafe",
		Short: "Secure byte-buffer toolkit",
		Long: `bytesafe works with raw byte sequences the way cryptographic code does:
hex in and out, right-aligned XOR and complement, big-endian integer
conversion, padding-direction-aware resizing, and best-effort secure
erasure with constant-time verification.

Destructive operations (file wipes, purged shrinks) are recorded in a
local audit log unless disabled in .bytesafe.yaml.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress informational messages")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "show extra detail")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newHexCmd())
	rootCmd.AddCommand(newXorCmd())
	rootCmd.AddCommand(newNotCmd())
	rootCmd.AddCommand(newRandCmd())
	rootCmd.AddCommand(newU64Cmd())
	rootCmd.AddCommand(newResizeCmd())
	rootCmd.AddCommand(newWipeCmd())
	rootCmd.AddCommand(newSealCmd())
	rootCmd.AddCommand(newUnsealCmd())
	rootCmd.AddCommand(newKeyCmd())
	rootCmd.AddCommand(newAuditCmd())

	return rootCmd
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of bytesafe",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bytesafe %s\n", version)
		},
	}
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}
