package feed

import (
	"sync"
)

// DropRing is a thread-safe bounded ring buffer. When full, a push
// evicts the oldest pending item to make room for the new one; a push
// never blocks and never rejects the newest item. Staleness under a
// slow consumer is accepted over backpressure on the publisher.
type DropRing[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []T
	head   int // read position
	count  int
	closed bool

	// Stats
	totalPushed    int64
	totalDelivered int64
	totalDropped   int64
}

// NewDropRing creates a ring with the given fixed capacity.
func NewDropRing[T any](capacity int) *DropRing[T] {
	if capacity < 1 {
		capacity = 1
	}
	r := &DropRing[T]{
		buf: make([]T, capacity),
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Push adds an item. If the ring is full the oldest pending item is
// dropped first. Returns false only when the ring is closed.
func (r *DropRing[T]) Push(item T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	if r.count == len(r.buf) {
		// Evict the oldest pending item.
		var zero T
		r.buf[r.head] = zero
		r.head = (r.head + 1) % len(r.buf)
		r.count--
		r.totalDropped++
	}

	tail := (r.head + r.count) % len(r.buf)
	r.buf[tail] = item
	r.count++
	r.totalPushed++

	r.cond.Signal()
	return true
}

// Receive removes and returns the oldest item, blocking until one is
// available or the ring is closed. Returns the zero value and false
// once the ring is closed and drained.
func (r *DropRing[T]) Receive() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for r.count == 0 && !r.closed {
		r.cond.Wait()
	}

	if r.count == 0 {
		var zero T
		return zero, false
	}
	return r.popLocked(), true
}

// TryReceive removes and returns the oldest item without blocking.
func (r *DropRing[T]) TryReceive() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		var zero T
		return zero, false
	}
	return r.popLocked(), true
}

func (r *DropRing[T]) popLocked() T {
	item := r.buf[r.head]
	var zero T
	r.buf[r.head] = zero // clear reference for GC
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	r.totalDelivered++
	return item
}

// Close marks the ring closed and wakes all waiting receivers. Pushes
// after Close return false; receivers drain remaining items first.
// Close is idempotent.
func (r *DropRing[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (r *DropRing[T]) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Len returns the number of pending items.
func (r *DropRing[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the fixed capacity.
func (r *DropRing[T]) Cap() int {
	return len(r.buf)
}

// Stats returns ring counters.
func (r *DropRing[T]) Stats() RingStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RingStats{
		Count:          r.count,
		Capacity:       len(r.buf),
		TotalPushed:    r.totalPushed,
		TotalDelivered: r.totalDelivered,
		TotalDropped:   r.totalDropped,
	}
}

// RingStats contains ring counters.
type RingStats struct {
	Count          int
	Capacity       int
	TotalPushed    int64
	TotalDelivered int64
	TotalDropped   int64
}
