package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xcke/bytesafe/erase"
	"github.com/xcke/bytesafe/internal/audit"
	"github.com/xcke/bytesafe/internal/output"
)

// newWipeCmd creates the wipe subcommand.
func newWipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wipe <file>...",
		Short: "Securely erase a file's contents",
		Long: `Overwrite each file's bytes in place (zeros, ones, zeros, with a sync
after every pass), verify the result in constant time, and truncate the
file to zero length. Use --keep to preserve the file's length instead
of truncating.

This reduces data remanence on the storage medium but cannot defeat
wear leveling, copy-on-write filesystems, or existing backups.

Wipes are recorded in the audit log unless disabled in .bytesafe.yaml.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			keep, _ := cmd.Flags().GetBool("keep")
			return runWipe(cmd, args, strict, keep)
		},
	}

	cmd.Flags().Bool("strict", false, "treat a failed verification as a hard error")
	cmd.Flags().Bool("keep", false, "preserve file length instead of truncating")

	return cmd
}

// runWipe wipes each named file, continuing past per-file failures and
// reporting the first error at the end.
func runWipe(cmd *cobra.Command, paths []string, strict, keep bool) error {
	w := output.NewWriter(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.StrictErase {
		strict = true
	}
	logger := auditLogger(cfg)

	var firstErr error
	for _, path := range paths {
		size, err := wipeFile(path, cfg.VerifyErase || strict, strict, keep)
		if err != nil {
			w.Warnf("wiping %s: %v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		w.Infof("wiped %s (%d bytes)\n", path, size)
		if err := logAudit(logger, audit.Entry{
			Operation: audit.OpWipe,
			Target:    path,
			Detail:    fmt.Sprintf("%d bytes", size),
		}); err != nil {
			w.Warnf("recording audit entry: %v\n", err)
		}
	}

	if firstErr != nil {
		return fmt.Errorf("one or more files could not be wiped: %w", firstErr)
	}
	return nil
}

// wipeFile overwrites the file at path with the three-pattern pass and
// returns the number of bytes erased. Verification reads the file back
// and checks every byte without early exit.
func wipeFile(path string, verify, strict, keep bool) (int64, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()
	if size == 0 {
		return 0, nil
	}

	for _, pattern := range []byte{0x00, 0xFF, 0x00} {
		if err := overwrite(f, size, pattern); err != nil {
			return 0, fmt.Errorf("overwrite pass: %w", err)
		}
		if err := f.Sync(); err != nil {
			return 0, fmt.Errorf("sync: %w", err)
		}
	}

	if verify {
		clean, err := verifyFileZeroed(f, size)
		if err != nil {
			return 0, err
		}
		if !clean {
			if strict {
				return 0, &erase.VerificationError{Size: int(size)}
			}
			return 0, errors.New("verification found non-zero bytes")
		}
	}

	if !keep {
		if err := f.Truncate(0); err != nil {
			return 0, fmt.Errorf("truncate: %w", err)
		}
	}
	return size, nil
}

// overwrite writes the pattern over the first size bytes of f.
func overwrite(f *os.File, size int64, pattern byte) error {
	const chunkSize = 64 * 1024
	chunk := make([]byte, chunkSize)
	for i := range chunk {
		chunk[i] = pattern
	}

	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	remaining := size
	for remaining > 0 {
		n := int64(chunkSize)
		if remaining < n {
			n = remaining
		}
		if _, err := f.Write(chunk[:n]); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

// verifyFileZeroed reads the file back and reports whether every byte
// is zero, examining all bytes regardless of where residue sits.
func verifyFileZeroed(f *os.File, size int64) (bool, error) {
	if _, err := f.Seek(0, 0); err != nil {
		return false, err
	}

	var acc byte
	chunk := make([]byte, 64*1024)
	remaining := size
	for remaining > 0 {
		n := int64(len(chunk))
		if remaining < n {
			n = remaining
		}
		read, err := f.Read(chunk[:n])
		if err != nil {
			return false, fmt.Errorf("reading back: %w", err)
		}
		if !erase.VerifyZeroed(chunk[:read]) {
			acc |= 1
		}
		remaining -= int64(read)
	}
	return acc == 0, nil
}
