package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xcke/bytesafe/bytebuf"
	"github.com/xcke/bytesafe/internal/output"
)

// newRandCmd creates the rand subcommand.
func newRandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rand <n>",
		Short: "Generate n pseudo-random bytes as hex",
		Long: `Generate n pseudo-random bytes and print them as hex. The generator
is seeded from the system entropy source but is NOT cryptographically
strong; do not use the output for keys, nonces, or passwords. Requests
are capped at 1 MiB.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewWriter(cmd)

			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid byte count %q: %w", args[0], err)
			}

			b, err := bytebuf.Random(n)
			if err != nil {
				return err
			}

			w.Verbosef("generated %d bytes\n", b.Len())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), b.Hex())
			return nil
		},
	}
}
