package refresher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/pricefeed/internal/feed"
	"github.com/rickgao/pricefeed/internal/quote"
	"github.com/rickgao/pricefeed/internal/store"
)

// mockTickers returns a fixed ticker list.
type mockTickers struct {
	tickers []string
}

func (m *mockTickers) List() []string {
	return m.tickers
}

// mockQuotes serves quotes from a function.
type mockQuotes struct {
	fn func(ticker string) (quote.Quote, error)
}

func (m *mockQuotes) GetQuote(_ context.Context, ticker string) (quote.Quote, error) {
	return m.fn(ticker)
}

// capturePublisher records published prices.
type capturePublisher struct {
	mu     sync.Mutex
	prices map[string][]decimal.Decimal
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{prices: make(map[string][]decimal.Decimal)}
}

func (c *capturePublisher) Publish(ticker string, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[ticker] = append(c.prices[ticker], price)
}

func (c *capturePublisher) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, p := range c.prices {
		n += len(p)
	}
	return n
}

func quoteAt(price int64) quote.Quote {
	return quote.Quote{Current: decimal.NewFromInt(price)}
}

func TestRefresher_RefreshAll(t *testing.T) {
	tickers := &mockTickers{tickers: []string{"IBM", "AMZN", "AAPL"}}
	quotes := &mockQuotes{fn: func(string) (quote.Quote, error) {
		return quoteAt(100), nil
	}}
	pub := newCapturePublisher()

	r := New(DefaultConfig(), tickers, quotes, pub, nil)
	r.ctx = context.Background()

	r.refreshAll()

	if pub.count() != 3 {
		t.Errorf("published %d updates, want 3", pub.count())
	}
}

func TestRefresher_FailureIsolation(t *testing.T) {
	// Scenario: IBM=100, AMZN fails, AAPL=50. Exactly two publishes,
	// none for AMZN; a full feed.Publisher backs the store so the
	// final cache state is checked end to end.
	tickers := &mockTickers{tickers: []string{"IBM", "AMZN", "AAPL"}}
	quotes := &mockQuotes{fn: func(ticker string) (quote.Quote, error) {
		switch ticker {
		case "IBM":
			return quoteAt(100), nil
		case "AAPL":
			return quoteAt(50), nil
		default:
			return quote.Quote{}, errors.New("upstream unreachable")
		}
	}}

	st := store.New()
	reg := feed.NewRegistry()
	pub := feed.NewPublisher(feed.Config{QueueCapacity: 10}, st, reg, nil)
	sub := reg.Register(10)

	r := New(DefaultConfig(), tickers, quotes, pub, nil)
	r.ctx = context.Background()

	r.refreshAll()

	if got, ok := st.Get("IBM"); !ok || !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("IBM = %s, %v; want 100, true", got, ok)
	}
	if got, ok := st.Get("AAPL"); !ok || !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("AAPL = %s, %v; want 50, true", got, ok)
	}
	if _, ok := st.Get("AMZN"); ok {
		t.Error("AMZN should have no cached price after a failed fetch")
	}

	if sub.Queue().Len() != 2 {
		t.Errorf("subscriber queue has %d events, want 2", sub.Queue().Len())
	}
	for i := 0; i < 2; i++ {
		update, _ := sub.Queue().TryReceive()
		if update.Ticker == "AMZN" {
			t.Error("received an update for the failed ticker AMZN")
		}
	}
}

func TestRefresher_NonPositivePriceSkipped(t *testing.T) {
	tickers := &mockTickers{tickers: []string{"IBM"}}
	quotes := &mockQuotes{fn: func(string) (quote.Quote, error) {
		return quote.Quote{Current: decimal.Zero}, nil
	}}
	pub := newCapturePublisher()

	r := New(DefaultConfig(), tickers, quotes, pub, nil)
	r.ctx = context.Background()

	r.refreshAll()

	if pub.count() != 0 {
		t.Errorf("published %d updates for zero price, want 0", pub.count())
	}
}

func TestRefresher_NegativePriceSkipped(t *testing.T) {
	tickers := &mockTickers{tickers: []string{"IBM"}}
	quotes := &mockQuotes{fn: func(string) (quote.Quote, error) {
		return quote.Quote{Current: decimal.NewFromInt(-5)}, nil
	}}
	pub := newCapturePublisher()

	r := New(DefaultConfig(), tickers, quotes, pub, nil)
	r.ctx = context.Background()

	r.refreshAll()

	if pub.count() != 0 {
		t.Errorf("published %d updates for negative price, want 0", pub.count())
	}
}

func TestRefresher_EmptyTickerSkipped(t *testing.T) {
	tickers := &mockTickers{tickers: []string{""}}
	var called atomic.Bool
	quotes := &mockQuotes{fn: func(string) (quote.Quote, error) {
		called.Store(true)
		return quoteAt(1), nil
	}}
	pub := newCapturePublisher()

	r := New(DefaultConfig(), tickers, quotes, pub, nil)
	r.ctx = context.Background()

	r.refreshAll()

	if called.Load() {
		t.Error("quote source was called for an empty ticker")
	}
	if pub.count() != 0 {
		t.Errorf("published %d updates, want 0", pub.count())
	}
}

func TestRefresher_ConcurrencyCap(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32

	tickerList := make([]string, 20)
	for i := range tickerList {
		tickerList[i] = "TK" + string(rune('A'+i))
	}
	tickers := &mockTickers{tickers: tickerList}

	quotes := &mockQuotes{fn: func(string) (quote.Quote, error) {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)

		for {
			old := maxInFlight.Load()
			if current <= old || maxInFlight.CompareAndSwap(old, current) {
				break
			}
		}

		time.Sleep(20 * time.Millisecond)
		return quoteAt(1), nil
	}}
	pub := newCapturePublisher()

	cfg := Config{
		Interval:    time.Hour,
		Concurrency: 5,
		Timeout:     5 * time.Second,
	}
	r := New(cfg, tickers, quotes, pub, nil)
	r.ctx = context.Background()

	r.refreshAll()

	if got := maxInFlight.Load(); got > 5 {
		t.Errorf("maxInFlight = %d, want <= 5", got)
	}
	if pub.count() != 20 {
		t.Errorf("published %d updates, want 20", pub.count())
	}
}

func TestRefresher_StartStop(t *testing.T) {
	tickers := &mockTickers{tickers: []string{"IBM"}}

	var calls atomic.Int32
	quotes := &mockQuotes{fn: func(string) (quote.Quote, error) {
		calls.Add(1)
		return quoteAt(1), nil
	}}
	pub := newCapturePublisher()

	cfg := Config{
		Interval:    50 * time.Millisecond,
		Concurrency: 10,
		Timeout:     time.Second,
	}
	r := New(cfg, tickers, quotes, pub, nil)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Wait for the immediate cycle plus at least one timer tick.
	time.Sleep(120 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := r.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if calls.Load() < 2 {
		t.Errorf("calls = %d, want >= 2 (immediate + ticked cycle)", calls.Load())
	}
}
