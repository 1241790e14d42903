package feed

import (
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/pricefeed/internal/model"
	"github.com/rickgao/pricefeed/internal/store"
)

// Config holds feed configuration.
type Config struct {
	QueueCapacity int // Pending updates per subscriber (default: 100)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
	}
}

// Publisher writes price changes to the store and fans each one out to
// every registered subscriber queue. Every successful positive fetch
// is broadcast, including unchanged values; consumers that need
// change-only semantics filter on their side.
type Publisher struct {
	cfg      Config
	store    *store.Store
	registry *Registry
	logger   *slog.Logger

	mu        sync.Mutex
	published int64
	pruned    int64
}

// NewPublisher creates a Publisher over the given store and registry.
func NewPublisher(cfg Config, st *store.Store, registry *Registry, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.QueueCapacity < 1 {
		cfg.QueueCapacity = DefaultConfig().QueueCapacity
	}
	return &Publisher{
		cfg:      cfg,
		store:    st,
		registry: registry,
		logger:   logger,
	}
}

// Registry returns the subscription registry.
func (p *Publisher) Registry() *Registry {
	return p.registry
}

// Publish records the price in the store and enqueues one update on
// every subscriber queue. Per-subscriber delivery failure is isolated:
// a full queue drops its oldest pending update, a closed queue gets
// the subscriber pruned. Publish never returns an error to the caller.
func (p *Publisher) Publish(ticker string, price decimal.Decimal) {
	now := time.Now()
	p.store.SetAt(ticker, price, now)

	update := model.PriceUpdate{
		Ticker:     ticker,
		Price:      price,
		ObservedAt: now,
	}

	var dead []*Subscriber
	p.registry.ForEach(func(sub *Subscriber) {
		if !sub.queue.Push(update) {
			dead = append(dead, sub)
		}
	})

	for _, sub := range dead {
		p.logger.Debug("pruning dead subscriber", "subscriber", sub.ID())
		p.registry.Unregister(sub)
		p.mu.Lock()
		p.pruned++
		p.mu.Unlock()
	}

	p.mu.Lock()
	p.published++
	p.mu.Unlock()
}

// Stats returns publisher counters.
func (p *Publisher) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Published:   p.published,
		Pruned:      p.pruned,
		Subscribers: p.registry.Len(),
	}
}

// Stats contains publisher counters.
type Stats struct {
	Published   int64
	Pruned      int64
	Subscribers int
}
