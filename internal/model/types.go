package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceUpdate is one observed price for a tracked ticker. Updates are
// immutable once constructed; per-subscriber ordering is the order of
// emission, minus events evicted under the drop-oldest policy.
type PriceUpdate struct {
	Ticker     string          // Canonical (upper-case) ticker symbol
	Price      decimal.Decimal // Last observed price, always > 0 when published
	ObservedAt time.Time       // Local timestamp of the successful fetch
}
