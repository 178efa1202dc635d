package cmd

import (
	"fmt"
	"os"

	"github.com/containerd/console"
)

// isTerminal reports whether stderr is an interactive terminal, the
// way the shrink command decides whether to emit progress output at
// all.
func isTerminal() bool {
	_, err := console.ConsoleFromFile(os.Stderr)
	return err == nil
}

// reportProgress prints a one-line status update to stderr when
// attached to a terminal; in non-interactive contexts (CI, piped
// output) it stays silent so logs aren't spammed per-candidate.
func reportProgress(format string, args ...any) {
	if !isTerminal() {
		return
	}
	fmt.Fprintf(os.Stderr, "\r"+format, args...)
}

func finishProgress() {
	if !isTerminal() {
		return
	}
	fmt.Fprintln(os.Stderr)
}
