package cmd

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// StandardErrorIsTerminal reports whether standard error is attached to a
// terminal (including Cygwin and MSYS terminals on Windows).
func StandardErrorIsTerminal() bool {
	descriptor := os.Stderr.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// DisableColorUnlessTerminal disables colorized output if standard error isn't
// attached to a terminal. The color package only checks standard output, but
// warnings, errors, and log output are written to standard error.
func DisableColorUnlessTerminal() {
	if !StandardErrorIsTerminal() {
		color.NoColor = true
	}
}

func init() {
	// Discard output from the standard logger. Diagnostics go through
	// pkg/logging instead.
	log.SetOutput(io.Discard)
}
