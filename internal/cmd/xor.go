package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xcke/bytesafe/bytebuf"
	"github.com/xcke/bytesafe/internal/output"
)

// newXorCmd creates the xor subcommand.
func newXorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xor <hex> <hex>...",
		Short: "XOR two or more hex operands with right alignment",
		Long: `XOR hex operands together. Operands of different lengths are
right-aligned: the shorter operand lines up with the end of the longer
one and missing leading positions are treated as zero, matching the
big-endian numeric interpretation. The result length is the longest
operand's length.

  bytesafe xor aabb 112233
  118888`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewWriter(cmd)

			acc, err := parseHexArg(args[0], 1)
			if err != nil {
				return err
			}
			for i, arg := range args[1:] {
				operand, err := parseHexArg(arg, i+2)
				if err != nil {
					return err
				}
				acc.XORAssign(operand)
			}

			w.Verbosef("result length: %d bytes\n", acc.Len())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), acc.Hex())
			return nil
		},
	}
}

// newNotCmd creates the not (complement) subcommand.
func newNotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "not <hex>",
		Short: "Bitwise complement of a hex operand",
		Long: `Invert every bit of the operand. The empty string is rejected:
complementing nothing is an error rather than an empty result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bytebuf.FromHex(args[0])
			if err != nil {
				return err
			}
			out, err := b.Complement()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Hex())
			return nil
		},
	}
}
