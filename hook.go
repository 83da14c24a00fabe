package applog

import (
	"github.com/lixenwraith/applog/lifecycle"
)

// HandleLifecycle is a lifecycle.Handler: a fatal event is recorded as an
// Error entry, then the log file is flushed and closed.
//
//	n := lifecycle.New()
//	n.OnShutdown(logger.HandleLifecycle)
//	defer n.Recover()
func (l *Logger) HandleLifecycle(ev lifecycle.Event) {
	if ev.Reason == lifecycle.ReasonFatal {
		l.Error("Unhandled panic:", ev.Panic)
	}

	if err := l.Shutdown(); err != nil {
		l.internalLog("error - shutdown on %s failed: %v\n", ev.Reason, err)
	}
}
