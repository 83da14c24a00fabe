package applog

import (
	"time"
)

// Write renders e, appends it to the log file, records it in the ring buffer
// and applies the flush policy.
//
// The entry enters the ring buffer even when the file write fails, so recent
// history stays visible. Failed writes are not retried.
func (l *Logger) Write(e Entry) error {
	if !e.severity.Valid() {
		return fmtErrorf("%w: %d", ErrInvalidSeverity, int8(e.severity))
	}

	cfg := l.getConfig()
	line := e.appendRender(make([]byte, 0, 40+len(e.message)), cfg.ShowMilliseconds)
	line = append(line, '\n')

	l.echo(line)

	l.mu.Lock()
	writeErr := l.writeLocked(line)
	l.buffer.push(e)
	flushErr := l.maybeFlushLocked(false)
	l.mu.Unlock()

	l.state.TotalEntries.Add(1)

	err := combineErrors(writeErr, flushErr)
	if err != nil {
		l.state.WriteErrors.Add(1)
		l.internalLog("%v\n", err)
	}

	l.notify(e)
	return err
}

// writeLocked appends one rendered line to the open file
func (l *Logger) writeLocked(line []byte) error {
	if l.file == nil {
		return &IOError{Op: "write", Path: l.path, Err: ErrNotOpen}
	}
	_, err := l.file.Write(line)
	return newIOError("write", l.path, err)
}

// maybeFlushLocked syncs the file and empties the ring buffer unless all hold:
// force is false, the last sync is younger than the interval, and fewer than
// the message threshold entries are buffered.
func (l *Logger) maybeFlushLocked(force bool) error {
	cfg := l.getConfig()
	maxInterval := time.Duration(cfg.MaxFlushIntervalS) * time.Second

	if !force &&
		l.now().Sub(l.lastSyncedAt) < maxInterval &&
		int64(l.buffer.size()) < cfg.MaxFlushIntervalMessages {
		return nil
	}

	l.buffer.reset()

	var err error
	if l.file != nil {
		err = newIOError("sync", l.path, l.file.Sync())
	}

	l.lastSyncedAt = l.now()
	l.state.TotalFlushes.Add(1)
	return err
}

// echo mirrors a rendered line to the console sink, ignoring failures
func (l *Logger) echo(line []byte) {
	if s, ok := l.console.Load().(*sink); ok && s != nil {
		_, _ = s.w.Write(line)
	}
}
