package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// TerminationSignals are the signals treated as termination requests. SIGINT
// and SIGTERM are both emulated on Windows, SIGINT for Ctrl-C and Ctrl-Break
// and SIGTERM for console close, logoff, and shutdown events.
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

// TerminationContext returns a context that's cancelled when the process
// receives one of the TerminationSignals or when the returned stop function is
// called. The stop function should always be invoked to release signal
// notification resources.
func TerminationContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, TerminationSignals...)
}
