package applog

import (
	"sync"
	"sync/atomic"
)

// observers holds entry-written subscribers
type observers struct {
	mu      sync.RWMutex
	next    uint64
	subs    map[uint64]*subscriber
	dropped atomic.Uint64
}

// subscriber delivers queued entries to fn on its own goroutine
type subscriber struct {
	queue chan Entry
	fn    func(Entry)
}

func (s *subscriber) run() {
	for e := range s.queue {
		s.fn(e)
	}
}

// Subscribe registers fn to receive every written entry. Each subscriber has
// one delivery goroutine fed by a queue of observerQueueSize entries, so fn
// sees entries in write order. Write never waits on fn: when the queue is
// full the entry is dropped for that subscriber and counted in
// Stats.DroppedNotifications. The returned cancel removes fn and stops its
// goroutine once queued entries are delivered.
func (l *Logger) Subscribe(fn func(Entry)) (cancel func()) {
	sub := &subscriber{
		queue: make(chan Entry, observerQueueSize),
		fn:    fn,
	}
	go sub.run()

	l.observers.mu.Lock()
	id := l.observers.next
	l.observers.next++
	l.observers.subs[id] = sub
	l.observers.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.observers.mu.Lock()
			delete(l.observers.subs, id)
			close(sub.queue)
			l.observers.mu.Unlock()
		})
	}
}

// notify queues e for every subscriber without waiting
func (l *Logger) notify(e Entry) {
	l.observers.mu.RLock()
	defer l.observers.mu.RUnlock()

	for _, sub := range l.observers.subs {
		select {
		case sub.queue <- e:
		default:
			l.observers.dropped.Add(1)
		}
	}
}
