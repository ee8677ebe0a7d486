// Package output provides verbosity-aware output helpers for CLI
// commands.
//
// It reads the --quiet and --verbose persistent flags from the cobra
// command tree and provides helpers to conditionally print messages
// based on the active verbosity level. Data output always goes to
// stdout; diagnostics and warnings go to stderr.
package output

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Verbosity represents the output verbosity level.
type Verbosity int

const (
	// VerbosityQuiet suppresses informational messages. Only data output
	// and errors are shown.
	VerbosityQuiet Verbosity = -1
	// VerbosityNormal is the default verbosity level.
	VerbosityNormal Verbosity = 0
	// VerbosityVerbose shows extra detail such as config paths and byte
	// counts.
	VerbosityVerbose Verbosity = 1
)

// FromCmd reads the --quiet and --verbose persistent flags from the
// command and returns the effective verbosity. --quiet wins when both
// are set.
func FromCmd(cmd *cobra.Command) Verbosity {
	quiet, _ := cmd.Flags().GetBool("quiet")
	if quiet {
		return VerbosityQuiet
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return VerbosityVerbose
	}
	return VerbosityNormal
}

// Writer wraps a cobra command's output streams with leveled printing
// helpers.
type Writer struct {
	out       io.Writer
	errOut    io.Writer
	verbosity Verbosity
}

// NewWriter creates a Writer from a cobra command, capturing its stdout
// and stderr and the active verbosity.
func NewWriter(cmd *cobra.Command) *Writer {
	return &Writer{
		out:       cmd.OutOrStdout(),
		errOut:    cmd.ErrOrStderr(),
		verbosity: FromCmd(cmd),
	}
}

// Printf writes data output to stdout regardless of verbosity.
func (w *Writer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format, args...)
}

// Infof writes an informational message to stderr unless quiet.
func (w *Writer) Infof(format string, args ...any) {
	if w.verbosity >= VerbosityNormal {
		_, _ = fmt.Fprintf(w.errOut, format, args...)
	}
}

// Verbosef writes extra detail to stderr only at verbose level.
func (w *Writer) Verbosef(format string, args ...any) {
	if w.verbosity >= VerbosityVerbose {
		_, _ = fmt.Fprintf(w.errOut, format, args...)
	}
}

// Warnf writes a warning to stderr regardless of verbosity.
func (w *Writer) Warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.errOut, "warning: "+format, args...)
}

// ErrOut returns the underlying error stream, for callers that need to
// hand a writer to other code.
func (w *Writer) ErrOut() io.Writer {
	return w.errOut
}
