// Package refresher implements the periodic price refresh loop.
//
// The refresher:
//   - Fires a cycle on a fixed interval (default 30s), plus once at start
//   - Fetches every tracked ticker concurrently, capped by a weighted
//     semaphore (default 10 in flight)
//   - Publishes fetches that yield a positive price; skips the rest
//   - Absorbs per-ticker failures so one bad fetch never fails a cycle
//   - Stops only on context cancellation
package refresher
