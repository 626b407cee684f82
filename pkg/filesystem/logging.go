package filesystem

import (
	"github.com/mutagen-io/fsprim/pkg/logging"
)

// logger is the package logger. It's used for rollback failures (which are
// never returned to callers) and retry diagnostics. It's nil (and thus
// silent) until set.
var logger *logging.Logger

// SetLogger sets the logger used by the package. It should be called before
// any other operations in the package are invoked and isn't safe for
// concurrent use with them.
func SetLogger(l *logging.Logger) {
	logger = l
}
