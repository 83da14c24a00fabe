package applog

import (
	"fmt"
	"os"
	"strings"
)

// log builds an entry from args and writes it. Errors are already reported
// through internalLog by Write.
func (l *Logger) log(severity Severity, args ...any) {
	_ = l.Write(NewEntry(formatArgs(args), severity))
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func (l *Logger) internalLog(format string, args ...any) {
	cfg := l.getConfig()
	if !cfg.InternalErrorsToStderr {
		return
	}

	if limiter := l.errLimiter.Load(); limiter != nil && !limiter.Allow() {
		return
	}

	// Ensure consistent "log: " prefix
	if !strings.HasPrefix(format, "log: ") {
		format = "log: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
