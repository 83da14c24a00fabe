package applog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotOpen is returned when an operation needs the log file and none is open
	ErrNotOpen = errors.New("log: no open log file")
	// ErrInvalidSeverity is returned for severity values outside the declared set
	ErrInvalidSeverity = errors.New("log: invalid severity")
)

// IOError reports a failed open, write, sync or close of the log file.
type IOError struct {
	Op   string // "open", "write", "sync", "close"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("log: failed to %s log file '%s': %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// newIOError wraps err, returning nil for a nil err
func newIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "log: ") {
		format = "log: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}
