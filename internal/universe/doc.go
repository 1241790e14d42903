// Package universe holds the tracked ticker set.
//
// The set is fixed for the process lifetime: it is loaded once at
// startup (from config or the tracked_tickers table) and every other
// component treats it as read-only. Reload-from-source is a stated
// extension point, not implemented.
package universe
