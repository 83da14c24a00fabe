package applog

import (
	"os"
	"path/filepath"
)

// SetPath flushes and closes the open log file, if any, then opens path.
// Files are opened in append mode unless the truncate option is set.
// An error means path could not be opened: no file remains open and writes
// fail until the next successful SetPath. A failure to flush or close the
// previous file is reported through internal diagnostics and counted in
// Stats.CloseErrors.
func (l *Logger) SetPath(path string) error {
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger already shut down")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return newIOError("open", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Shutdown may have closed the file between the check above and the lock
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger already shut down")
	}

	closeErr := l.closeFileLocked()
	if closeErr != nil {
		l.state.CloseErrors.Add(1)
	}

	file, err := l.openFile(absPath)
	if err != nil {
		return combineErrors(closeErr, err)
	}

	l.file = file
	l.path = absPath
	l.lastSyncedAt = l.now()

	if closeErr != nil {
		l.internalLog("warning - previous log file did not close cleanly: %v\n", closeErr)
	}
	return nil
}

// GetPath returns the absolute path of the open log file, or "" when none is open.
func (l *Logger) GetPath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// openFile creates the parent directory and opens path for writing
func (l *Logger) openFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, newIOError("open", path, err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if l.getConfig().Truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}

	file, err := os.OpenFile(path, flags, filePerm)
	if err != nil {
		return nil, newIOError("open", path, err)
	}
	return file, nil
}

// closeFileLocked forces a flush and closes the open file. No-op without one.
func (l *Logger) closeFileLocked() error {
	if l.file == nil {
		return nil
	}

	flushErr := l.maybeFlushLocked(true)
	closeErr := newIOError("close", l.path, l.file.Close())

	l.file = nil
	l.path = ""
	return combineErrors(flushErr, closeErr)
}

// resolvePath returns the log file path a config points at
func resolvePath(cfg *Config) (string, error) {
	dir := cfg.Directory
	if dir == "" {
		var err error
		dir, err = DefaultDirectory(cfg.AppName)
		if err != nil {
			return "", err
		}
	}
	return filepath.Abs(filepath.Join(dir, cfg.FileName))
}

// DefaultDirectory returns the per-user application data directory for appName
// ($XDG_CONFIG_HOME/<app> on Linux, ~/Library/Application Support/<app> on macOS,
// %AppData%\<app> on Windows).
func DefaultDirectory(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmtErrorf("failed to resolve user data directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}
