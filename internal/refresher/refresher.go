package refresher

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"

	"github.com/rickgao/pricefeed/internal/quote"
)

// TickerSource provides the tracked tickers to refresh.
type TickerSource interface {
	List() []string
}

// QuoteSource fetches one quote for a ticker.
type QuoteSource interface {
	GetQuote(ctx context.Context, ticker string) (quote.Quote, error)
}

// Publisher receives successfully fetched positive prices.
type Publisher interface {
	Publish(ticker string, price decimal.Decimal)
}

// PublishFunc is a function adapter for Publisher.
type PublishFunc func(ticker string, price decimal.Decimal)

func (f PublishFunc) Publish(ticker string, price decimal.Decimal) {
	f(ticker, price)
}

// Config holds refresher configuration.
type Config struct {
	Interval    time.Duration // Refresh period (default: 30s)
	Concurrency int           // Max concurrent fetches (default: 10)
	Timeout     time.Duration // Per-fetch timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    30 * time.Second,
		Concurrency: 10,
		Timeout:     10 * time.Second,
	}
}

// Refresher periodically fetches a quote for every tracked ticker
// under bounded concurrency and publishes positive prices. The period
// is measured from cycle start: the ticker fires on the interval
// regardless of how long the previous cycle's fetches took.
type Refresher struct {
	cfg       Config
	tickers   TickerSource
	quotes    QuoteSource
	publisher Publisher
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Refresher.
func New(cfg Config, tickers TickerSource, quotes QuoteSource, publisher Publisher, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		cfg:       cfg,
		tickers:   tickers,
		quotes:    quotes,
		publisher: publisher,
		logger:    logger,
	}
}

// Start begins the refresh loop.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("price refresher started",
		"interval", r.cfg.Interval,
		"concurrency", r.cfg.Concurrency,
	)

	return nil
}

// Stop gracefully shuts down the refresher.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("price refresher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main refresh loop.
func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	// Refresh immediately on start.
	r.refreshAll()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.refreshAll()
		}
	}
}

// refreshAll runs one cycle across the whole tracked set. The cycle
// always completes: a failed or slow fetch for one ticker never
// cancels the others.
func (r *Refresher) refreshAll() {
	start := time.Now()

	tickers := r.tickers.List()
	if len(tickers) == 0 {
		r.logger.Debug("no tracked tickers to refresh")
		return
	}

	sem := semaphore.NewWeighted(int64(r.cfg.Concurrency))
	var wg sync.WaitGroup
	var updated, skipped, failed atomic.Int64

	for _, t := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			if err := sem.Acquire(r.ctx, 1); err != nil {
				return // shutting down
			}
			defer sem.Release(1)

			switch r.refreshTicker(ticker) {
			case outcomeUpdated:
				updated.Add(1)
			case outcomeSkipped:
				skipped.Add(1)
			case outcomeFailed:
				failed.Add(1)
			}
		}(t)
	}

	wg.Wait()

	r.logger.Info("refresh cycle complete",
		"tickers", len(tickers),
		"updated", updated.Load(),
		"skipped", skipped.Load(),
		"failed", failed.Load(),
		"duration", time.Since(start),
	)
}

type outcome int

const (
	outcomeUpdated outcome = iota
	outcomeSkipped
	outcomeFailed
)

// refreshTicker fetches and publishes a single ticker's price.
func (r *Refresher) refreshTicker(ticker string) outcome {
	if ticker == "" {
		// The tracked set should never hand out an empty symbol.
		r.logger.Warn("skipping empty ticker")
		return outcomeSkipped
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.cfg.Timeout)
	defer cancel()

	q, err := r.quotes.GetQuote(ctx, ticker)
	if err != nil {
		r.logger.Warn("failed to fetch quote",
			"ticker", ticker,
			"err", err,
		)
		return outcomeFailed
	}

	// A non-positive or absent price carries no new information; the
	// previously cached value, if any, stands.
	if q.Current.Sign() <= 0 {
		r.logger.Debug("no usable price in quote", "ticker", ticker)
		return outcomeSkipped
	}

	r.publisher.Publish(ticker, q.Current)
	return outcomeUpdated
}
