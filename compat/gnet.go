package compat

import (
	"fmt"
	"os"

	"github.com/lixenwraith/applog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps applog.Logger to implement gnet logging.Logger interface.
// Debug and info map to Notification, warn to Warning, error and fatal to Error.
type GnetAdapter struct {
	logger       *applog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *applog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at notification severity
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Notification("gnet:", fmt.Sprintf(format, args...))
}

// Infof logs at notification severity
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Notification("gnet:", fmt.Sprintf(format, args...))
}

// Warnf logs at warning severity
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warning("gnet:", fmt.Sprintf(format, args...))
}

// Errorf logs at error severity
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Error("gnet:", fmt.Sprintf(format, args...))
}

// Fatalf logs at error severity, closes the log file and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Error("gnet: fatal:", msg)

	// Ensure log is durable before exit
	_ = a.logger.Shutdown()

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
