package applog

import (
	"strconv"
	"strings"
	"time"
)

// Entry is one immutable log record. Construct with NewEntry; the zero value
// is a Notification with an empty message and zero timestamp.
type Entry struct {
	message   string
	severity  Severity
	timestamp time.Time
}

// NewEntry trims the message and captures the current wall-clock time.
func NewEntry(message string, severity Severity) Entry {
	return newEntryAt(message, severity, time.Now())
}

// newEntryAt builds an entry with an explicit timestamp
func newEntryAt(message string, severity Severity, ts time.Time) Entry {
	return Entry{
		message:   strings.TrimSpace(message),
		severity:  severity,
		timestamp: ts,
	}
}

// Message returns the trimmed message text.
func (e Entry) Message() string { return e.message }

// Severity returns the entry severity.
func (e Entry) Severity() Severity { return e.severity }

// Time returns the construction timestamp.
func (e Entry) Time() time.Time { return e.timestamp }

// Render formats the entry as "[<Severity>] at <h>:<m>:<s> - <message>".
// Time fields are local wall-clock and unpadded.
func (e Entry) Render() string {
	return string(e.appendRender(make([]byte, 0, 32+len(e.message)), false))
}

// RenderMillis is Render with ":<ms>" appended to the time.
func (e Entry) RenderMillis() string {
	return string(e.appendRender(make([]byte, 0, 36+len(e.message)), true))
}

func (e Entry) appendRender(buf []byte, millis bool) []byte {
	ts := e.timestamp.Local()

	buf = append(buf, '[')
	buf = append(buf, e.severity.String()...)
	buf = append(buf, "] at "...)
	buf = strconv.AppendInt(buf, int64(ts.Hour()), 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(ts.Minute()), 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(ts.Second()), 10)
	if millis {
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(ts.Nanosecond()/int(time.Millisecond)), 10)
	}
	buf = append(buf, " - "...)
	buf = append(buf, e.message...)
	return buf
}

// String returns the display label of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityNotification:
		return "Notification"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
}

// Valid reports whether s is one of the declared severities.
func (s Severity) Valid() bool {
	return s >= SeverityNotification && s <= SeverityError
}

// ParseSeverity converts a label to a Severity. Matching is case-insensitive
// and accepts the short forms "info", "warn" and "err".
func ParseSeverity(label string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "notification", "info":
		return SeverityNotification, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error", "err":
		return SeverityError, nil
	default:
		return 0, fmtErrorf("%w: '%s' (use notification, warning, error)", ErrInvalidSeverity, label)
	}
}
