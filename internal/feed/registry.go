package feed

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/rickgao/pricefeed/internal/model"
)

// Subscriber is one registered consumer's handle: an identity plus the
// bounded queue of pending updates owned jointly by the publisher
// (write side) and the streaming session (read side).
type Subscriber struct {
	id    uuid.UUID
	queue *DropRing[model.PriceUpdate]
}

// ID returns the subscriber's unique id.
func (s *Subscriber) ID() uuid.UUID {
	return s.id
}

// Queue returns the subscriber's pending-update queue.
func (s *Subscriber) Queue() *DropRing[model.PriceUpdate] {
	return s.queue
}

// Registry tracks the set of active subscribers. Reads take a
// copy-on-write snapshot from an atomic pointer, so publishers never
// block behind Register/Unregister; mutation replaces the whole slice
// under a mutex.
type Registry struct {
	mu   sync.Mutex // serializes Register/Unregister
	subs atomic.Pointer[[]*Subscriber]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := make([]*Subscriber, 0)
	r.subs.Store(&empty)
	return r
}

// Register creates a subscriber with a queue of the given capacity and
// adds it to the registry.
func (r *Registry) Register(queueCapacity int) *Subscriber {
	sub := &Subscriber{
		id:    uuid.New(),
		queue: NewDropRing[model.PriceUpdate](queueCapacity),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.subs.Load()
	next := make([]*Subscriber, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = sub
	r.subs.Store(&next)

	return sub
}

// Unregister removes the subscriber and closes its queue. Safe to call
// more than once and for subscribers already pruned by the publisher.
func (r *Registry) Unregister(sub *Subscriber) {
	if sub == nil {
		return
	}

	r.mu.Lock()
	cur := *r.subs.Load()
	next := make([]*Subscriber, 0, len(cur))
	for _, s := range cur {
		if s != sub {
			next = append(next, s)
		}
	}
	r.subs.Store(&next)
	r.mu.Unlock()

	sub.queue.Close()
}

// ForEach invokes fn on a stable snapshot of the registered
// subscribers. Registrations that race with the call may or may not be
// visited; no subscriber is visited twice.
func (r *Registry) ForEach(fn func(*Subscriber)) {
	for _, s := range *r.subs.Load() {
		fn(s)
	}
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	return len(*r.subs.Load())
}
