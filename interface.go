package applog

// Logger convenience methods: arguments are joined into the message text.

// Notification logs a message at notification severity.
func (l *Logger) Notification(args ...any) {
	l.log(SeverityNotification, args...)
}

// Warning logs a message at warning severity.
func (l *Logger) Warning(args ...any) {
	l.log(SeverityWarning, args...)
}

// Error logs a message at error severity.
func (l *Logger) Error(args ...any) {
	l.log(SeverityError, args...)
}

// Log writes args at the given severity. Severity values outside the
// declared set are rejected without writing.
func (l *Logger) Log(severity Severity, args ...any) error {
	return l.Write(NewEntry(formatArgs(args), severity))
}
