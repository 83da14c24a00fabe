package applog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestLogger creates logger in temp directory, returning the log file path
func createTestLogger(t testing.TB) (*Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()
	logger := NewLogger()

	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.EnableConsole = false
	cfg.InternalErrorsToStderr = false

	err := logger.ApplyConfig(cfg)
	require.NoError(t, err)

	return logger, filepath.Join(tmpDir, DefaultFileName)
}

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 14, 15, 9, 26, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// readLines returns the non-empty lines of a file
func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	trimmed := strings.TrimRight(string(content), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// TestNewLogger verifies that a new logger starts without an open file
func TestNewLogger(t *testing.T) {
	logger := NewLogger()

	assert.NotNil(t, logger)
	assert.False(t, logger.state.IsInitialized.Load())
	assert.Equal(t, "", logger.GetPath())
	assert.Equal(t, int(DefaultMaxEntryCount), logger.buffer.capacity)
}

// TestApplyConfig verifies that applying a configuration opens the log file
func TestApplyConfig(t *testing.T) {
	logger, logPath := createTestLogger(t)
	defer logger.Shutdown()

	assert.True(t, logger.state.IsInitialized.Load())
	assert.Equal(t, logPath, logger.GetPath())

	_, err := os.Stat(logPath)
	assert.NoError(t, err)
}

// TestApplyConfigNil rejects a nil configuration
func TestApplyConfigNil(t *testing.T) {
	logger := NewLogger()
	assert.Error(t, logger.ApplyConfig(nil))
}

// TestApplyConfigMovesFile verifies a directory change flushes the old file and opens the new one
func TestApplyConfigMovesFile(t *testing.T) {
	logger, oldPath := createTestLogger(t)
	defer logger.Shutdown()

	logger.Notification("before move")
	flushes := logger.Stats().Flushes

	newDir := t.TempDir()
	cfg := logger.GetConfig()
	cfg.Directory = newDir
	require.NoError(t, logger.ApplyConfig(cfg))

	assert.Equal(t, filepath.Join(newDir, DefaultFileName), logger.GetPath())
	assert.Equal(t, flushes+1, logger.Stats().Flushes)

	logger.Notification("after move")
	require.NoError(t, logger.Flush())

	oldLines := readLines(t, oldPath)
	require.Len(t, oldLines, 1)
	assert.True(t, strings.HasSuffix(oldLines[0], " - before move"))

	newLines := readLines(t, logger.GetPath())
	require.Len(t, newLines, 1)
	assert.True(t, strings.HasSuffix(newLines[0], " - after move"))
}

// TestApplyConfigSamePathKeepsFile verifies that unrelated changes do not reopen the file
func TestApplyConfigSamePathKeepsFile(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	file := logger.file
	require.NoError(t, logger.ApplyOverride("show_milliseconds=true"))
	assert.Same(t, file, logger.file)
	assert.True(t, logger.GetConfig().ShowMilliseconds)
}

// TestApplyConfigResizesBuffer verifies the ring keeps the newest entries when shrunk
func TestApplyConfigResizesBuffer(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	require.NoError(t, logger.ApplyOverride("max_flush_interval_messages=1000"))
	for i := 0; i < 8; i++ {
		logger.Notification("entry", i)
	}

	require.NoError(t, logger.ApplyOverride("max_entry_count=5"))
	recent := logger.Recent()
	require.Len(t, recent, 5)
	assert.Equal(t, "entry 3", recent[0].Message())
	assert.Equal(t, "entry 7", recent[4].Message())
}

// TestApplyOverride tests applying configuration overrides from key-value strings
func TestApplyOverride(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	tests := []struct {
		name      string
		overrides []string
		verify    func(t *testing.T, cfg *Config)
		wantError bool
	}{
		{
			name: "flush policy",
			overrides: []string{
				"max_entry_count=200",
				"max_flush_interval_s=30",
				"max_flush_interval_messages=20",
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(200), cfg.MaxEntryCount)
				assert.Equal(t, int64(30), cfg.MaxFlushIntervalS)
				assert.Equal(t, int64(20), cfg.MaxFlushIntervalMessages)
			},
		},
		{
			name: "boolean values",
			overrides: []string{
				"show_milliseconds=true",
				"enable_console=false",
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.ShowMilliseconds)
				assert.False(t, cfg.EnableConsole)
			},
		},
		{
			name:      "invalid format",
			overrides: []string{"invalid"},
			wantError: true,
		},
		{
			name:      "unknown key",
			overrides: []string{"unknown_key=value"},
			wantError: true,
		},
		{
			name:      "invalid value type",
			overrides: []string{"max_entry_count=not_a_number"},
			wantError: true,
		},
		{
			name:      "fails validation",
			overrides: []string{"max_flush_interval_s=0"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logger.ApplyOverride(tt.overrides...)

			if tt.wantError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				tt.verify(t, logger.GetConfig())
			}
		})
	}
}

// TestApplyOverrideMultipleErrors verifies errors are combined and numbered
func TestApplyOverrideMultipleErrors(t *testing.T) {
	logger := NewLogger()
	err := logger.ApplyOverride("nope", "max_entry_count=x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple configuration errors")
	assert.Contains(t, err.Error(), "1. ")
	assert.Contains(t, err.Error(), "2. ")
}

// TestLoggerSeverities checks each convenience method writes its label
func TestLoggerSeverities(t *testing.T) {
	logger, logPath := createTestLogger(t)

	logger.Notification("notification message")
	logger.Warning("warning message")
	logger.Error("error message")

	require.NoError(t, logger.Shutdown())

	lines := readLines(t, logPath)
	require.Len(t, lines, 3)
	assert.Regexp(t, `^\[Notification\] at \d{1,2}:\d{1,2}:\d{1,2} - notification message$`, lines[0])
	assert.Regexp(t, `^\[Warning\] at \d{1,2}:\d{1,2}:\d{1,2} - warning message$`, lines[1])
	assert.Regexp(t, `^\[Error\] at \d{1,2}:\d{1,2}:\d{1,2} - error message$`, lines[2])
}

// TestLoggerMilliseconds verifies the millisecond rendering option reaches the file
func TestLoggerMilliseconds(t *testing.T) {
	logger, logPath := createTestLogger(t)
	require.NoError(t, logger.ApplyOverride("show_milliseconds=true"))

	logger.Notification("precise")
	require.NoError(t, logger.Shutdown())

	lines := readLines(t, logPath)
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\[Notification\] at \d{1,2}:\d{1,2}:\d{1,2}:\d{1,3} - precise$`, lines[0])
}

// TestWriteEntry verifies Write uses the entry's own timestamp and trimmed message
func TestWriteEntry(t *testing.T) {
	logger, logPath := createTestLogger(t)

	e := newEntryAt("  spaced out  ", SeverityWarning, time.Date(2024, 1, 2, 7, 4, 9, 0, time.Local))
	require.NoError(t, logger.Write(e))
	require.NoError(t, logger.Shutdown())

	assert.Equal(t, []string{"[Warning] at 7:4:9 - spaced out"}, readLines(t, logPath))
}

// TestWriteInvalidSeverity verifies out-of-range severities are rejected without writing
func TestWriteInvalidSeverity(t *testing.T) {
	logger, logPath := createTestLogger(t)

	err := logger.Write(NewEntry("bad", Severity(9)))
	assert.ErrorIs(t, err, ErrInvalidSeverity)

	err = logger.Log(Severity(-1), "bad")
	assert.ErrorIs(t, err, ErrInvalidSeverity)

	assert.Empty(t, logger.Recent())
	require.NoError(t, logger.Shutdown())
	assert.Empty(t, readLines(t, logPath))
}

// TestWriteWithoutFile verifies the entry reaches the ring buffer even when no file is open
func TestWriteWithoutFile(t *testing.T) {
	logger := NewLogger()
	cfg := DefaultConfig()
	cfg.InternalErrorsToStderr = false
	cfg.EnableConsole = false
	logger.currentConfig.Store(cfg)

	err := logger.Write(NewEntry("orphan", SeverityNotification))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotOpen)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Op)

	recent := logger.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "orphan", recent[0].Message())
	assert.Equal(t, uint64(1), logger.Stats().WriteErrors)
}

// TestWriteFailureKeepsHistory verifies a failing file write still records the entry
func TestWriteFailureKeepsHistory(t *testing.T) {
	logger, _ := createTestLogger(t)

	// Close the handle underneath the logger
	require.NoError(t, logger.file.Close())

	err := logger.Write(NewEntry("lost on disk", SeverityError))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrClosed)

	recent := logger.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "lost on disk", recent[0].Message())

	// Closing an already closed handle reports the failure once
	assert.Error(t, logger.Shutdown())
	assert.NoError(t, logger.Shutdown())
}

// TestConsoleEcho confirms entries are mirrored to the console sink
func TestConsoleEcho(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	var buf bytes.Buffer
	logger.console.Store(&sink{w: &buf})

	logger.Warning("echoed")
	assert.Regexp(t, `^\[Warning\] at \d{1,2}:\d{1,2}:\d{1,2} - echoed\n$`, buf.String())
}

// TestSubscribe verifies observers receive written entries until cancelled
func TestSubscribe(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	received := make(chan Entry, 4)
	cancel := logger.Subscribe(func(e Entry) {
		received <- e
	})

	logger.Error("observed")

	select {
	case e := <-received:
		assert.Equal(t, "observed", e.Message())
		assert.Equal(t, SeverityError, e.Severity())
	case <-time.After(time.Second):
		t.Fatal("observer was not notified")
	}

	cancel()
	cancel() // Safe to call twice

	logger.Error("not observed")
	select {
	case e := <-received:
		t.Fatalf("unexpected delivery after cancel: %s", e.Message())
	case <-time.After(50 * time.Millisecond):
	}
}

// TestSubscribeOrdered verifies a subscriber sees entries in write order
func TestSubscribeOrdered(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	received := make(chan string, 32)
	cancel := logger.Subscribe(func(e Entry) {
		received <- e.Message()
	})
	defer cancel()

	for i := 0; i < 20; i++ {
		logger.Notification("entry", i)
	}

	for i := 0; i < 20; i++ {
		select {
		case msg := <-received:
			assert.Equal(t, formatArgs([]any{"entry", i}), msg)
		case <-time.After(time.Second):
			t.Fatalf("entry %d was not delivered", i)
		}
	}
}

// TestSubscribeSlowSubscriber verifies a blocked subscriber neither stalls writes nor queues without bound
func TestSubscribeSlowSubscriber(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	release := make(chan struct{})
	var delivered atomic.Int64
	cancel := logger.Subscribe(func(Entry) {
		<-release
		delivered.Add(1)
	})

	const total = observerQueueSize * 4
	goroutines := runtime.NumGoroutine()

	done := make(chan struct{})
	go func() {
		for i := 0; i < total; i++ {
			logger.Notification("entry", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("writes blocked on a slow subscriber")
	}

	// At most the queue plus the entry held by the blocked callback survive
	dropped := logger.Stats().DroppedNotifications
	assert.GreaterOrEqual(t, dropped, uint64(total-observerQueueSize-1))
	assert.LessOrEqual(t, runtime.NumGoroutine(), goroutines+2)

	close(release)
	cancel()

	assert.Eventually(t, func() bool {
		return delivered.Load() == int64(total)-int64(dropped)
	}, 2*time.Second, 10*time.Millisecond)
}

// TestApplyOverrideConcurrent verifies concurrent overrides of different keys all persist
func TestApplyOverrideConcurrent(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	overrides := []string{
		"show_milliseconds=true",
		"max_flush_interval_s=30",
		"max_flush_interval_messages=20",
		"internal_error_rate=2",
	}

	for i := 0; i < 50; i++ {
		require.NoError(t, logger.ApplyOverride(
			"show_milliseconds=false",
			"max_flush_interval_s=60",
			"max_flush_interval_messages=10",
			"internal_error_rate=1",
		))

		var wg sync.WaitGroup
		for _, o := range overrides {
			wg.Add(1)
			go func(o string) {
				defer wg.Done()
				assert.NoError(t, logger.ApplyOverride(o))
			}(o)
		}
		wg.Wait()

		cfg := logger.GetConfig()
		require.True(t, cfg.ShowMilliseconds, "iteration %d", i)
		require.Equal(t, int64(30), cfg.MaxFlushIntervalS, "iteration %d", i)
		require.Equal(t, int64(20), cfg.MaxFlushIntervalMessages, "iteration %d", i)
		require.Equal(t, 2.0, cfg.InternalErrorRate, "iteration %d", i)
	}
}

// TestLoggerConcurrency ensures the logger is safe for concurrent use from multiple goroutines
func TestLoggerConcurrency(t *testing.T) {
	logger, logPath := createTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				logger.Notification("goroutine", i, "entry", j)
				assert.LessOrEqual(t, len(logger.Recent()), int(DefaultMaxEntryCount))
			}
		}(i)
	}

	wg.Wait()
	require.NoError(t, logger.Shutdown())

	assert.Len(t, readLines(t, logPath), 1000)
	assert.Equal(t, uint64(1000), logger.Stats().Entries)
}
