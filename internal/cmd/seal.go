package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xcke/bytesafe/bytebuf"
	"github.com/xcke/bytesafe/internal/audit"
	"github.com/xcke/bytesafe/internal/output"
)

// passphraseEnvVar allows non-interactive use of seal/unseal.
const passphraseEnvVar = "BYTESAFE_PASSPHRASE"

// newSealCmd creates the seal subcommand.
func newSealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seal <file>",
		Short: "Encrypt a file with a passphrase",
		Long: `Encrypt a file with age scrypt passphrase encryption and write the
ASCII-armored ciphertext next to it with a .age suffix. The passphrase
is read from the terminal without echo, or from ` + passphraseEnvVar + `
when set.

With --rm the plaintext file is securely wiped after sealing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, _ := cmd.Flags().GetBool("rm")
			outPath, _ := cmd.Flags().GetString("output")
			return runSeal(cmd, args[0], outPath, rm)
		},
	}

	cmd.Flags().BoolP("rm", "r", false, "securely wipe the plaintext file after sealing")
	cmd.Flags().StringP("output", "o", "", "output path (default: input path + .age)")

	return cmd
}

// newUnsealCmd creates the unseal subcommand.
func newUnsealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unseal <file>",
		Short: "Decrypt a sealed file",
		Long: `Decrypt an age-armored file produced by seal. The plaintext is written
to stdout by default so it never has to touch disk; use --output to
write it to a file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath, _ := cmd.Flags().GetString("output")
			return runUnseal(cmd, args[0], outPath)
		},
	}

	cmd.Flags().StringP("output", "o", "", "write plaintext to a file instead of stdout")

	return cmd
}

// runSeal encrypts the named file.
func runSeal(cmd *cobra.Command, path, outPath string, rm bool) error {
	w := output.NewWriter(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	passphrase, err := readPassphrase(cmd, true)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	plaintext := bytebuf.Adopt(data)

	sealed, err := sealBytes(plaintext.Raw(), passphrase)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = path + ".age"
	}
	if err := os.WriteFile(outPath, sealed, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	// The in-memory plaintext is no longer needed either way.
	if _, err := plaintext.WipeDefault(); err != nil {
		w.Warnf("erasing plaintext copy: %v\n", err)
	}

	detail := fmt.Sprintf("sealed to %s", outPath)
	if rm {
		if _, err := wipeFile(path, cfg.VerifyErase, cfg.StrictErase, false); err != nil {
			return fmt.Errorf("wiping %s after sealing: %w", path, err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		detail += ", plaintext wiped"
	}

	if err := logAudit(auditLogger(cfg), audit.Entry{
		Operation: audit.OpSeal,
		Target:    path,
		Detail:    detail,
	}); err != nil {
		w.Warnf("recording audit entry: %v\n", err)
	}

	w.Infof("sealed %s -> %s\n", path, outPath)
	return nil
}

// runUnseal decrypts the named file.
func runUnseal(cmd *cobra.Command, path, outPath string) error {
	w := output.NewWriter(cmd)

	passphrase, err := readPassphrase(cmd, false)
	if err != nil {
		return err
	}

	sealed, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	plaintext, err := unsealBytes(sealed, passphrase)
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(plaintext.Raw())
		return err
	}
	if err := os.WriteFile(outPath, plaintext.Raw(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if _, err := plaintext.WipeDefault(); err != nil {
		w.Warnf("erasing plaintext copy: %v\n", err)
	}

	w.Infof("unsealed %s -> %s\n", path, outPath)
	return nil
}

// sealBytes encrypts plaintext with age scrypt passphrase encryption
// and returns the ASCII-armored ciphertext.
func sealBytes(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	writer, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("creating age writer: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing plaintext: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing age writer: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("closing armor writer: %w", err)
	}

	return buf.Bytes(), nil
}

// unsealBytes decrypts ASCII-armored age ciphertext into a buffer the
// caller can wipe when done.
func unsealBytes(sealed []byte, passphrase string) (bytebuf.Buffer, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return bytebuf.Buffer{}, fmt.Errorf("creating age identity: %w", err)
	}

	armorReader := armor.NewReader(bytes.NewReader(sealed))
	reader, err := age.Decrypt(armorReader, identity)
	if err != nil {
		return bytebuf.Buffer{}, fmt.Errorf("decrypting: %w", err)
	}

	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return bytebuf.Buffer{}, fmt.Errorf("reading plaintext: %w", err)
	}

	return bytebuf.Adopt(plaintext), nil
}

// readPassphrase obtains the passphrase from the environment or the
// terminal. With confirm set, interactive entry is requested twice.
func readPassphrase(cmd *cobra.Command, confirm bool) (string, error) {
	if p := os.Getenv(passphraseEnvVar); p != "" {
		return p, nil
	}

	stderr := cmd.ErrOrStderr()

	stdinFd, isTerm := terminalFd(cmd)
	if !isTerm {
		return "", fmt.Errorf("passphrase required: set %s or use an interactive terminal", passphraseEnvVar)
	}

	_, _ = fmt.Fprint(stderr, "Enter passphrase: ")
	passBytes, err := term.ReadPassword(stdinFd)
	_, _ = fmt.Fprintln(stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	passphrase := string(passBytes)
	if strings.TrimSpace(passphrase) == "" {
		return "", fmt.Errorf("passphrase must not be empty")
	}

	if confirm {
		_, _ = fmt.Fprint(stderr, "Confirm passphrase: ")
		confirmBytes, err := term.ReadPassword(stdinFd)
		_, _ = fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if passphrase != string(confirmBytes) {
			return "", fmt.Errorf("passphrases do not match")
		}
	}

	return passphrase, nil
}

// terminalFd returns the file descriptor for stdin and whether it is a
// terminal. It checks the command's InOrStdin before falling back to
// os.Stdin.
func terminalFd(cmd *cobra.Command) (int, bool) {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		fd := int(f.Fd())
		return fd, term.IsTerminal(fd)
	}
	fd := int(os.Stdin.Fd())
	return fd, term.IsTerminal(fd)
}
