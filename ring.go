package applog

// ring is a fixed-capacity FIFO of recent entries.
// When full, the oldest entry is evicted. Not goroutine-safe; Logger.mu guards it.
type ring struct {
	entries  []Entry
	head     int // next write position
	count    int
	capacity int
	evicted  uint64
}

// newRing creates a ring with the given capacity
func newRing(capacity int) *ring {
	if capacity <= 0 {
		capacity = int(DefaultMaxEntryCount)
	}
	return &ring{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
}

// push appends e, evicting the oldest entry when full
func (r *ring) push(e Entry) {
	r.entries[r.head] = e
	r.head = (r.head + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	} else {
		r.evicted++
	}
}

// snapshot returns a copy of the buffered entries, oldest first
func (r *ring) snapshot() []Entry {
	result := make([]Entry, r.count)
	if r.count < r.capacity {
		copy(result, r.entries[:r.count])
	} else {
		// Full: head is the oldest slot
		n := copy(result, r.entries[r.head:])
		copy(result[n:], r.entries[:r.head])
	}
	return result
}

// reset drops all entries without releasing the backing array
func (r *ring) reset() {
	clear(r.entries)
	r.head = 0
	r.count = 0
}

func (r *ring) size() int { return r.count }
