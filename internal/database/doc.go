// Package database provides the optional Postgres connection used to
// load the tracked ticker set at startup. Prices themselves are never
// persisted; the cache is in-memory only.
package database
