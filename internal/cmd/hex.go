package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xcke/bytesafe/bytebuf"
)

// newHexCmd creates the hex subcommand with encode/decode children.
func newHexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hex",
		Short: "Convert between raw bytes and hex text",
	}
	cmd.AddCommand(newHexEncodeCmd())
	cmd.AddCommand(newHexDecodeCmd())
	return cmd
}

// newHexEncodeCmd creates the hex encode subcommand.
func newHexEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text (or stdin) as lowercase hex",
		Long: `Encode the argument's raw bytes as hex, two lowercase digits per byte.
With no argument, raw bytes are read from stdin, which is the way to
encode binary data:

  bytesafe hex encode hello
  cat key.bin | bytesafe hex encode`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var b bytebuf.Buffer
			if len(args) == 1 {
				b = bytebuf.FromString(args[0])
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				b = bytebuf.Adopt(data)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), b.Hex())
			return nil
		},
	}
}

// newHexDecodeCmd creates the hex decode subcommand.
func newHexDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode hex text to raw bytes on stdout",
		Long: `Decode a hex string to its raw bytes. Odd-length input is legal: the
final lone digit is read as the low nibble of the last byte, so
"fe81eabd5" decodes to fe 81 ea bd 05.

Raw bytes are written to stdout; redirect to a file for binary data:

  bytesafe hex decode deadbeef > out.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bytebuf.FromHex(args[0])
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(b.Raw()); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}
	return cmd
}
