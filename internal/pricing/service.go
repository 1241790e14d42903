package pricing

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/rickgao/pricefeed/internal/store"
	"github.com/rickgao/pricefeed/internal/universe"
)

// Sentinel errors for query validation and lookup failures. These are
// the only errors surfaced to callers; background refresh and
// broadcast failures never cross this boundary.
var (
	// ErrInvalidTicker means the symbol is empty or violates the
	// length bounds.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrUnknownTicker means the symbol is not in the tracked set.
	ErrUnknownTicker = errors.New("unsupported ticker")

	// ErrPriceUnavailable means the ticker is tracked but no fetch has
	// succeeded yet.
	ErrPriceUnavailable = errors.New("price not available")
)

// Service answers price queries against the tracked set and the store.
type Service struct {
	tracked *universe.Set
	store   *store.Store
	logger  *slog.Logger
}

// NewService creates a query Service.
func NewService(tracked *universe.Set, st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tracked: tracked,
		store:   st,
		logger:  logger,
	}
}

// GetPrice returns the latest cached price for the (case-insensitive)
// ticker.
func (s *Service) GetPrice(ticker string) (decimal.Decimal, error) {
	canon := universe.Normalize(ticker)
	if len(canon) < universe.MinTickerLen || len(canon) > universe.MaxTickerLen {
		s.logger.Warn("rejected malformed ticker", "ticker", ticker)
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	if !s.tracked.Contains(canon) {
		s.logger.Warn("rejected untracked ticker", "ticker", canon)
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnknownTicker, canon)
	}

	price, ok := s.store.Get(canon)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w for %s", ErrPriceUnavailable, canon)
	}
	return price, nil
}

// AllPrices returns every currently cached price keyed by ticker.
func (s *Service) AllPrices() map[string]decimal.Decimal {
	snapshot := s.store.Snapshot()
	out := make(map[string]decimal.Decimal, len(snapshot))
	for _, u := range snapshot {
		out[u.Ticker] = u.Price
	}
	return out
}

// Tickers returns the tracked tickers in sorted order.
func (s *Service) Tickers() []string {
	return s.tracked.List()
}
