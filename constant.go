package applog

// Severity classifies an entry. The set is closed: Notification, Warning, Error.
type Severity int8

// Severity constants
const (
	SeverityNotification Severity = iota
	SeverityWarning
	SeverityError
)

// Defaults for the buffer and flush policy
const (
	// Ring buffer capacity
	DefaultMaxEntryCount            int64 = 100
	// Staleness bound between durable flushes
	DefaultMaxFlushIntervalS        int64 = 60
	// Buffered entry count that forces a flush
	DefaultMaxFlushIntervalMessages int64 = 10
)

// Destination
const (
	DefaultAppName  = "applog"
	DefaultFileName = "Log.txt"
)

// File
const (
	filePerm = 0644
	dirPerm  = 0755
)

// Diagnostics
const (
	// Burst of internal error reports allowed before rate limiting applies
	internalErrorBurst = 5
	// Entries queued per subscriber before notifications are dropped
	observerQueueSize  = 64
)
