package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xcke/bytesafe/bytebuf"
	"github.com/xcke/bytesafe/internal/audit"
	"github.com/xcke/bytesafe/internal/output"
	"github.com/xcke/bytesafe/pad"
)

// newResizeCmd creates the resize subcommand.
func newResizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize <hex> <n>",
		Short: "Resize a byte sequence with a padding direction",
		Long: `Resize the operand to exactly n bytes. The padding direction decides
which end survives:

  lsb (default)  keep the leading bytes; grow by appending zeros
  msb            keep the trailing bytes; grow by prepending zeros,
                 preserving numeric significance

The default direction comes from .bytesafe.yaml when present. With
--purge, a shrinking resize securely erases the discarded storage and
the operation is recorded in the audit log.

  bytesafe resize 010203 5 --msb
  0000010203
  bytesafe resize 0102030405 3 --msb
  030405`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msb, _ := cmd.Flags().GetBool("msb")
			lsb, _ := cmd.Flags().GetBool("lsb")
			purge, _ := cmd.Flags().GetBool("purge")
			return runResize(cmd, args[0], args[1], msb, lsb, purge)
		},
	}

	cmd.Flags().Bool("msb", false, "preserve the most-significant (trailing) bytes")
	cmd.Flags().Bool("lsb", false, "preserve the least-significant (leading) bytes")
	cmd.Flags().Bool("purge", false, "securely erase discarded storage when shrinking")

	return cmd
}

// runResize parses the operands and performs the resize.
func runResize(cmd *cobra.Command, hexArg, nArg string, msb, lsb, purge bool) error {
	w := output.NewWriter(cmd)

	if msb && lsb {
		return fmt.Errorf("--msb and --lsb are mutually exclusive")
	}

	n, err := strconv.Atoi(nArg)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid target length %q", nArg)
	}

	b, err := bytebuf.FromHex(hexArg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.Direction()
	if msb {
		dir = pad.MSB
	} else if lsb {
		dir = pad.LSB
	}

	oldLen := b.Len()
	shrink := n < oldLen

	// Route the library's shrink warning through the command's stderr.
	oldDiag := bytebuf.Diagnostics
	bytebuf.Diagnostics = w.ErrOut()
	defer func() { bytebuf.Diagnostics = oldDiag }()

	b.Resize(n, bytebuf.ResizeOptions{
		PurgeBeforeResize: purge,
		WarnOnShrink:      shrink && !purge,
		Direction:         dir,
	})

	if shrink && purge {
		if err := logAudit(auditLogger(cfg), audit.Entry{
			Operation: audit.OpShrinkPurge,
			Target:    "cli-operand",
			Detail:    fmt.Sprintf("%d -> %d bytes, direction %s", oldLen, n, dir),
		}); err != nil {
			w.Warnf("recording audit entry: %v\n", err)
		}
	}

	w.Verbosef("resized %d -> %d bytes (%s)\n", oldLen, n, dir)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), b.Hex())
	return nil
}
