package applog

import (
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of the logger
type State struct {
	IsInitialized  atomic.Bool
	ShutdownCalled atomic.Bool

	TotalEntries atomic.Uint64 // Entries passed to Write
	TotalFlushes atomic.Uint64 // Durable flushes, forced or policy-triggered
	WriteErrors  atomic.Uint64 // Write calls that returned an error
	CloseErrors  atomic.Uint64 // Failed flush or close of a file being replaced
}

// Stats is a point-in-time view of logger activity.
type Stats struct {
	Path         string
	Entries      uint64
	Flushes      uint64
	WriteErrors  uint64
	CloseErrors  uint64
	Buffered     int
	Evicted      uint64
	LastSyncedAt time.Time

	DroppedNotifications uint64
}

// Stats returns current counters. Buffer size and sync time are read together.
func (l *Logger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Stats{
		Path:         l.path,
		Entries:      l.state.TotalEntries.Load(),
		Flushes:      l.state.TotalFlushes.Load(),
		WriteErrors:  l.state.WriteErrors.Load(),
		CloseErrors:  l.state.CloseErrors.Load(),
		Buffered:     l.buffer.size(),
		Evicted:      l.buffer.evicted,
		LastSyncedAt: l.lastSyncedAt,

		DroppedNotifications: l.observers.dropped.Load(),
	}
}

// Recent returns the buffered entries, oldest first. The buffer empties on
// every flush, so this is the history since the last sync.
func (l *Logger) Recent() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buffer.snapshot()
}

// Flush forces a durable sync of the log file and empties the ring buffer.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return &IOError{Op: "sync", Path: l.path, Err: ErrNotOpen}
	}
	return l.maybeFlushLocked(true)
}

// Shutdown flushes and closes the log file. Only the first call does work;
// later calls return nil.
func (l *Logger) Shutdown() error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	l.mu.Lock()
	err := l.closeFileLocked()
	l.mu.Unlock()

	l.state.IsInitialized.Store(false)
	return err
}
