package compat

import (
	"fmt"
	"os"

	"github.com/lixenwraith/applog"
)

// FiberAdapter wraps applog.Logger to satisfy Fiber's AllLogger method set
// (CommonLogger, FormatLogger and WithLogger) plus io.Writer.
// Trace, debug and info map to Notification, warn to Warning, and error,
// fatal and panic to Error.
type FiberAdapter struct {
	logger       *applog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter
func NewFiberAdapter(logger *applog.Logger, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior
		},
		panicHandler: func(msg string) {
			panic(msg) // Default behavior
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

// log writes msg with optional key=value pairs at severity
func (a *FiberAdapter) log(severity applog.Severity, msg string, keysAndValues []any) {
	args := make([]any, 0, 2+len(keysAndValues)/2+1)
	args = append(args, "fiber:", msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			args = append(args, fmt.Sprintf("%v=%v", keysAndValues[i], keysAndValues[i+1]))
		} else {
			args = append(args, keysAndValues[i])
		}
	}
	_ = a.logger.Log(severity, args...)
}

// terminate logs msg, closes the log file and runs handler
func (a *FiberAdapter) terminate(label, msg string, keysAndValues []any, handler func(string)) {
	a.log(applog.SeverityError, label+": "+msg, keysAndValues)

	// Ensure log is durable before exit or panic
	_ = a.logger.Shutdown()

	if handler != nil {
		handler(msg)
	}
}

// --- CommonLogger ---

func (a *FiberAdapter) Trace(v ...any) { a.log(applog.SeverityNotification, fmt.Sprint(v...), nil) }
func (a *FiberAdapter) Debug(v ...any) { a.log(applog.SeverityNotification, fmt.Sprint(v...), nil) }
func (a *FiberAdapter) Info(v ...any)  { a.log(applog.SeverityNotification, fmt.Sprint(v...), nil) }
func (a *FiberAdapter) Warn(v ...any)  { a.log(applog.SeverityWarning, fmt.Sprint(v...), nil) }
func (a *FiberAdapter) Error(v ...any) { a.log(applog.SeverityError, fmt.Sprint(v...), nil) }

func (a *FiberAdapter) Fatal(v ...any) {
	a.terminate("fatal", fmt.Sprint(v...), nil, a.fatalHandler)
}

func (a *FiberAdapter) Panic(v ...any) {
	a.terminate("panic", fmt.Sprint(v...), nil, a.panicHandler)
}

// Write makes FiberAdapter an io.Writer, one Notification entry per call
func (a *FiberAdapter) Write(p []byte) (n int, err error) {
	a.log(applog.SeverityNotification, string(p), nil)
	return len(p), nil
}

// --- FormatLogger ---

func (a *FiberAdapter) Tracef(format string, v ...any) {
	a.log(applog.SeverityNotification, fmt.Sprintf(format, v...), nil)
}

func (a *FiberAdapter) Debugf(format string, v ...any) {
	a.log(applog.SeverityNotification, fmt.Sprintf(format, v...), nil)
}

func (a *FiberAdapter) Infof(format string, v ...any) {
	a.log(applog.SeverityNotification, fmt.Sprintf(format, v...), nil)
}

func (a *FiberAdapter) Warnf(format string, v ...any) {
	a.log(applog.SeverityWarning, fmt.Sprintf(format, v...), nil)
}

func (a *FiberAdapter) Errorf(format string, v ...any) {
	a.log(applog.SeverityError, fmt.Sprintf(format, v...), nil)
}

func (a *FiberAdapter) Fatalf(format string, v ...any) {
	a.terminate("fatal", fmt.Sprintf(format, v...), nil, a.fatalHandler)
}

func (a *FiberAdapter) Panicf(format string, v ...any) {
	a.terminate("panic", fmt.Sprintf(format, v...), nil, a.panicHandler)
}

// --- WithLogger ---

func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.log(applog.SeverityNotification, msg, keysAndValues)
}

func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.log(applog.SeverityNotification, msg, keysAndValues)
}

func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.log(applog.SeverityNotification, msg, keysAndValues)
}

func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.log(applog.SeverityWarning, msg, keysAndValues)
}

func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.log(applog.SeverityError, msg, keysAndValues)
}

func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.terminate("fatal", msg, keysAndValues, a.fatalHandler)
}

func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.terminate("panic", msg, keysAndValues, a.panicHandler)
}
