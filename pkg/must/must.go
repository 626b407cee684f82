// Package must provides helpers for operations whose failures can't be
// meaningfully handled by the caller, typically because they occur while
// rolling back after an earlier failure. Failures are logged as warnings and
// otherwise swallowed so that the triggering error takes precedence.
package must

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/pkg/logging"
)

func Close(c io.Closer, logger *logging.Logger) {
	err := c.Close()
	if err != nil {
		logger.Warnf("Unable to close: %s", err.Error())
	}
}

func OSRemove(name string, logger *logging.Logger) {
	err := os.Remove(name)
	if err != nil {
		logger.Warnf("Unable to remove '%s': %s", name, err.Error())
	}
}

func Unlock(locker interface{ Unlock() error }, logger *logging.Logger) {
	err := locker.Unlock()
	if err != nil {
		logger.Warnf("Unable to unlock locker: %s", err.Error())
	}
}

func CommandHelp(c *cobra.Command, logger *logging.Logger) {
	err := c.Help()
	if err != nil {
		logger.Warnf("Unable to help: %s", err.Error())
	}
}

// Succeed logs a warning if err is non-nil. It's intended for wrapping
// release calls that don't fit one of the other helpers, e.g. a raw system
// call made during rollback.
func Succeed(err error, task string, logger *logging.Logger) {
	if err != nil {
		logger.Warnf("Unable to succeed at %s; %s", task, err.Error())
	}
}
