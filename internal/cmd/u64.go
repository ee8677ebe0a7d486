package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xcke/bytesafe/bytebuf"
)

// newU64Cmd creates the u64 subcommand with encode/decode children.
func newU64Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "u64",
		Short: "Convert between unsigned 64-bit integers and big-endian bytes",
	}
	cmd.AddCommand(newU64EncodeCmd())
	cmd.AddCommand(newU64DecodeCmd())
	return cmd
}

// newU64EncodeCmd creates the u64 encode subcommand.
func newU64EncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <value>",
		Short: "Encode a decimal value as minimal big-endian hex",
		Long: `Encode a decimal value using the minimal number of big-endian bytes:
no leading zero byte, except that zero encodes as exactly one zero byte.

  bytesafe u64 encode 256
  0100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), bytebuf.FromUint64(v).Hex())
			return nil
		},
	}
}

// newU64DecodeCmd creates the u64 decode subcommand.
func newU64DecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode big-endian hex bytes to a decimal value",
		Long: `Fold up to eight big-endian bytes into an unsigned 64-bit value.
Longer input cannot be represented and is rejected.

  bytesafe u64 decode 0100
  256`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bytebuf.FromHex(args[0])
			if err != nil {
				return err
			}
			v, err := b.Uint64()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
