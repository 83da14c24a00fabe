package applog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Logger appends rendered entries to a log file, keeps a ring buffer of recent
// entries, and syncs the file under a hybrid time/count policy.
//
// One Logger is meant to be constructed by the application's composition root
// and passed to callers. All methods are safe for concurrent use.
type Logger struct {
	currentConfig atomic.Value // stores *Config
	state         State
	initMu        sync.Mutex // serializes ApplyConfig

	// mu guards the file handle, ring buffer and sync timestamp as one unit
	mu           sync.Mutex
	file         *os.File
	path         string
	buffer       *ring
	lastSyncedAt time.Time
	now          func() time.Time

	console    atomic.Value                 // stores *sink
	errLimiter atomic.Pointer[rate.Limiter] // throttles internalLog
	observers  observers
}

// sink is a wrapper around an io.Writer, atomic value type change workaround
type sink struct {
	w io.Writer
}

// NewLogger creates a Logger with default settings and no open file.
// Call ApplyConfig or SetPath before writing.
func NewLogger() *Logger {
	cfg := DefaultConfig()
	l := &Logger{
		buffer: newRing(int(cfg.MaxEntryCount)),
		now:    time.Now,
	}
	l.currentConfig.Store(cfg)
	l.lastSyncedAt = l.now()
	l.console.Store(&sink{w: io.Discard})
	l.errLimiter.Store(rate.NewLimiter(rate.Limit(cfg.InternalErrorRate), internalErrorBurst))
	l.observers.subs = make(map[uint64]*subscriber)
	return l
}

// ApplyConfig validates cfg and applies it. When the resolved file path differs
// from the open one, the old file is flushed and closed before the new one opens.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("log: configuration cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("log: invalid configuration: %w", err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	return l.applyConfig(cfg.Clone())
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// applyConfig is the internal implementation for applying configuration, assuming initMu is held
func (l *Logger) applyConfig(cfg *Config) error {
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger already shut down")
	}

	path, err := resolvePath(cfg)
	if err != nil {
		return err
	}

	oldCfg := l.getConfig()
	l.currentConfig.Store(cfg)
	l.applyRuntime(cfg, oldCfg)

	// Reopen only when the destination changed
	current := l.GetPath()
	if current == "" || current != path {
		if err := l.SetPath(path); err != nil {
			// Rollback
			l.currentConfig.Store(oldCfg)
			l.applyRuntime(oldCfg, cfg)
			return err
		}
	}

	l.state.IsInitialized.Store(true)
	return nil
}

// applyRuntime brings the ring buffer, diagnostics limiter and console sink
// in line with cfg, prev being the configuration they were built from
func (l *Logger) applyRuntime(cfg, prev *Config) {
	l.resizeBuffer(int(cfg.MaxEntryCount))

	if cfg.InternalErrorRate != prev.InternalErrorRate || l.errLimiter.Load() == nil {
		l.errLimiter.Store(rate.NewLimiter(rate.Limit(cfg.InternalErrorRate), internalErrorBurst))
	}

	if cfg.EnableConsole {
		var writer io.Writer = os.Stdout
		if cfg.ConsoleTarget == "stderr" {
			writer = os.Stderr
		}
		l.console.Store(&sink{w: writer})
	} else {
		l.console.Store(&sink{w: io.Discard})
	}
}

// resizeBuffer replaces the ring when capacity changes, keeping the newest entries
func (l *Logger) resizeBuffer(capacity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.buffer.capacity == capacity {
		return
	}
	resized := newRing(capacity)
	for _, e := range l.buffer.snapshot() {
		resized.push(e)
	}
	l.buffer = resized
}

// setClock replaces the time source and restarts the staleness timer from it
func (l *Logger) setClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
	l.lastSyncedAt = now()
}
