package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/xcke/bytesafe/bytebuf"
	"github.com/xcke/bytesafe/internal/audit"
	"github.com/xcke/bytesafe/internal/output"
)

// keyringService namespaces bytesafe entries in the OS keychain.
const keyringService = "bytesafe"

// keyringProvider abstracts the go-keyring functions for testing. In
// production these point at the real package functions; tests swap in
// an in-memory map.
var keyringProvider = struct {
	Set    func(service, user, password string) error
	Get    func(service, user string) (string, error)
	Delete func(service, user string) error
}{
	Set:    keyring.Set,
	Get:    keyring.Get,
	Delete: keyring.Delete,
}

// newKeyCmd creates the key subcommand with set/get/rm children.
func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Store byte sequences in the OS keychain",
		Long: `Store hex-encoded byte sequences in the operating system keychain
(macOS Keychain, Linux Secret Service, Windows Credential Manager)
under the service name "bytesafe". Values round-trip as hex so they
stay printable in keychain UIs.`,
	}
	cmd.AddCommand(newKeySetCmd())
	cmd.AddCommand(newKeyGetCmd())
	cmd.AddCommand(newKeyRmCmd())
	return cmd
}

// newKeySetCmd creates the key set subcommand.
func newKeySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <hex>",
		Short: "Store a byte sequence under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewWriter(cmd)

			// Validate and normalize before it reaches the keychain.
			b, err := bytebuf.FromHex(args[1])
			if err != nil {
				return err
			}

			if err := keyringProvider.Set(keyringService, args[0], b.Hex()); err != nil {
				return fmt.Errorf("keychain set %q: %w", args[0], err)
			}

			w.Infof("stored %s (%d bytes)\n", args[0], b.Len())
			return nil
		},
	}
}

// newKeyGetCmd creates the key get subcommand.
func newKeyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print a stored byte sequence as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := keyringProvider.Get(keyringService, args[0])
			if err != nil {
				if errors.Is(err, keyring.ErrNotFound) {
					return fmt.Errorf("no entry named %q", args[0])
				}
				return fmt.Errorf("keychain get %q: %w", args[0], err)
			}

			// Entries are stored as hex; reject anything that drifted.
			b, err := bytebuf.FromHex(val)
			if err != nil {
				return fmt.Errorf("entry %q is not valid hex: %w", args[0], err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), b.Hex())
			return nil
		},
	}
}

// newKeyRmCmd creates the key rm subcommand.
func newKeyRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a stored byte sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewWriter(cmd)

			if err := keyringProvider.Delete(keyringService, args[0]); err != nil {
				if errors.Is(err, keyring.ErrNotFound) {
					return fmt.Errorf("no entry named %q", args[0])
				}
				return fmt.Errorf("keychain delete %q: %w", args[0], err)
			}

			cfg, err := loadConfig()
			if err == nil {
				if err := logAudit(auditLogger(cfg), audit.Entry{
					Operation: audit.OpKeyDelete,
					Target:    args[0],
				}); err != nil {
					w.Warnf("recording audit entry: %v\n", err)
				}
			}

			w.Infof("removed %s\n", args[0])
			return nil
		},
	}
}
