// Package pricing implements the query boundary over the price cache.
//
// Validation happens here: symbols are normalized, checked against the
// length bounds and the tracked set, and resolved against the store.
// Sentinel errors let transports map failures to status codes.
package pricing
