package logging

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/fatih/color"
)

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It is safe for concurrent
// usage, and subloggers share the output (and output lock) of their parent.
type Logger struct {
	// level is the log level at or below which messages are emitted.
	level Level
	// prefix is any prefix specified for the logger.
	prefix string
	// output is the shared output sink.
	output *output
}

// output wraps a standard logger along with a lock that serializes writes to
// it. It's shared between a root logger and all of its subloggers.
type output struct {
	// lock serializes access to logger.
	lock sync.Mutex
	// logger is the underlying standard logger.
	logger *log.Logger
}

// NewLogger creates a new root logger that writes messages at or below the
// specified level to the specified writer.
func NewLogger(level Level, writer io.Writer) *Logger {
	return &Logger{
		level:  level,
		output: &output{logger: log.New(writer, "", log.LstdFlags|log.Lmicroseconds)},
	}
}

// Level returns the logger's level. A nil logger reports LevelDisabled.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		level:  l.level,
		prefix: prefix,
		output: l.output,
	}
}

// enabled returns whether or not messages at the specified level should be
// emitted.
func (l *Logger) enabled(level Level) bool {
	return l != nil && level <= l.level
}

// write is the internal logging method.
func (l *Logger) write(line string) {
	// Add a prefix if necessary.
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}

	// Log.
	l.output.lock.Lock()
	l.output.logger.Output(3, line)
	l.output.lock.Unlock()
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	if l.enabled(LevelError) {
		l.write(color.RedString("Error: %v", err))
	}
}

// Errorf logs error information with an error prefix and red color, using
// semantics equivalent to fmt.Sprintf for message formatting.
func (l *Logger) Errorf(format string, v ...any) {
	if l.enabled(LevelError) {
		l.write(color.RedString("Error: "+format, v...))
	}
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l.enabled(LevelWarn) {
		l.write(color.YellowString("Warning: %v", err))
	}
}

// Warnf logs information with a warning prefix and yellow color, using
// semantics equivalent to fmt.Sprintf for message formatting.
func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.write(color.YellowString("Warning: "+format, v...))
	}
}

// Info logs information with semantics equivalent to fmt.Sprint.
func (l *Logger) Info(v ...any) {
	if l.enabled(LevelInfo) {
		l.write(fmt.Sprint(v...))
	}
}

// Infof logs information with semantics equivalent to fmt.Sprintf.
func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.write(fmt.Sprintf(format, v...))
	}
}

// Debug logs information with semantics equivalent to fmt.Sprint.
func (l *Logger) Debug(v ...any) {
	if l.enabled(LevelDebug) {
		l.write(fmt.Sprint(v...))
	}
}

// Debugf logs information with semantics equivalent to fmt.Sprintf.
func (l *Logger) Debugf(format string, v ...any) {
	if l.enabled(LevelDebug) {
		l.write(fmt.Sprintf(format, v...))
	}
}

// Trace logs information with semantics equivalent to fmt.Sprint.
func (l *Logger) Trace(v ...any) {
	if l.enabled(LevelTrace) {
		l.write(fmt.Sprint(v...))
	}
}

// Tracef logs information with semantics equivalent to fmt.Sprintf.
func (l *Logger) Tracef(format string, v ...any) {
	if l.enabled(LevelTrace) {
		l.write(fmt.Sprintf(format, v...))
	}
}
