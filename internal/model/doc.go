// Package model defines shared domain types.
//
// Conventions:
//   - Tickers: upper-case strings, canonicalized by the universe package
//   - Prices: decimal.Decimal for exact money values
//   - Timestamps: time.Time, stamped locally when the price was observed
package model
