// Package lifecycle delivers application termination notices to registered
// handlers exactly once, whether termination comes from a signal, an explicit
// request, or an unhandled panic.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Reason identifies what triggered termination
type Reason int

const (
	ReasonQuit   Reason = iota // Explicit request from the application
	ReasonSignal               // Termination signal from the OS
	ReasonFatal                // Unhandled panic at the application boundary
)

// String returns the reason name
func (r Reason) String() string {
	switch r {
	case ReasonQuit:
		return "quit"
	case ReasonSignal:
		return "signal"
	case ReasonFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Event describes a termination
type Event struct {
	Reason Reason
	Signal os.Signal // Set for ReasonSignal
	Panic  any       // Set for ReasonFatal
}

// Handler receives the termination event
type Handler func(Event)

// Notifier fans a single termination event out to handlers.
type Notifier struct {
	mu       sync.Mutex
	handlers []Handler
	once     sync.Once
	fired    chan struct{}
}

// New creates a Notifier
func New() *Notifier {
	return &Notifier{fired: make(chan struct{})}
}

// OnShutdown registers h. Handlers run in registration order. A handler
// registered after the event fired is not called.
func (n *Notifier) OnShutdown(h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, h)
}

// Fire runs all handlers with ev. Only the first call has effect; it reports
// whether this call was the one that ran the handlers.
func (n *Notifier) Fire(ev Event) bool {
	ran := false
	n.once.Do(func() {
		ran = true
		n.mu.Lock()
		handlers := make([]Handler, len(n.handlers))
		copy(handlers, n.handlers)
		n.mu.Unlock()

		for _, h := range handlers {
			h(ev)
		}
		close(n.fired)
	})
	return ran
}

// Quit fires a ReasonQuit event
func (n *Notifier) Quit() bool {
	return n.Fire(Event{Reason: ReasonQuit})
}

// Done is closed after the handlers have run
func (n *Notifier) Done() <-chan struct{} {
	return n.fired
}

// Watch blocks until one of signals arrives, ctx is cancelled, or the
// notifier fires elsewhere. A received signal fires ReasonSignal.
// With no signals given, SIGINT and SIGTERM are watched.
func (n *Notifier) Watch(ctx context.Context, signals ...os.Signal) {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		n.Fire(Event{Reason: ReasonSignal, Signal: sig})
	case <-ctx.Done():
	case <-n.fired:
	}
}

// Recover must be deferred directly. On panic it fires ReasonFatal with the
// panic value, then re-panics so the process still terminates.
func (n *Notifier) Recover() {
	if r := recover(); r != nil {
		n.Fire(Event{Reason: ReasonFatal, Panic: r})
		panic(r)
	}
}
