// Package store implements the in-memory price cache.
//
// The store:
//   - Maps canonical tickers to their latest observed decimal price
//   - Shards entries across independent locks for concurrent writers
//   - Is written only by the refresher, read by any caller
//   - Lives for the process lifetime; nothing is ever evicted
package store
