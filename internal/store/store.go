package store

import (
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/pricefeed/internal/model"
)

// shardCount trades memory for write parallelism. Refresh writes hit
// disjoint tickers, so unrelated tickers must not contend on one lock.
const shardCount = 16

type entry struct {
	price decimal.Decimal
	at    time.Time
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// Store holds the latest known price per tracked ticker. It is the
// single source of truth queried by consumers. A ticker absent from
// the store has not yet received a successful fetch.
type Store struct {
	shards [shardCount]shard
}

// New creates an empty Store.
func New() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]entry)
	}
	return s
}

func (s *Store) shardFor(ticker string) *shard {
	h := fnv.New32a()
	h.Write([]byte(ticker))
	return &s.shards[h.Sum32()%shardCount]
}

// Get returns the latest price for ticker. The second return is false
// when no price has been recorded yet.
func (s *Store) Get(ticker string) (decimal.Decimal, bool) {
	sh := s.shardFor(ticker)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	e, ok := sh.entries[ticker]
	if !ok {
		return decimal.Decimal{}, false
	}
	return e.price, true
}

// Set records the latest price for ticker. Set never fails; a later
// write simply replaces the previous value.
func (s *Store) Set(ticker string, price decimal.Decimal) {
	s.setAt(ticker, price, time.Now())
}

// SetAt records a price with an explicit observation time.
func (s *Store) SetAt(ticker string, price decimal.Decimal, at time.Time) {
	s.setAt(ticker, price, at)
}

func (s *Store) setAt(ticker string, price decimal.Decimal, at time.Time) {
	sh := s.shardFor(ticker)
	sh.mu.Lock()
	sh.entries[ticker] = entry{price: price, at: at}
	sh.mu.Unlock()
}

// Snapshot returns all currently stored prices sorted by ticker. Each
// entry is internally consistent; the snapshot is not atomic across
// shards, which is acceptable since only the latest value per ticker
// matters.
func (s *Store) Snapshot() []model.PriceUpdate {
	var out []model.PriceUpdate
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for ticker, e := range sh.entries {
			out = append(out, model.PriceUpdate{
				Ticker:     ticker,
				Price:      e.price,
				ObservedAt: e.at,
			})
		}
		sh.mu.RUnlock()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// Len returns the number of tickers with a recorded price.
func (s *Store) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
