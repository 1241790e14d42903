// Package feed implements subscriber fan-out for price updates.
//
// The feed:
//   - Tracks active subscribers in a copy-on-write registry
//   - Gives each subscriber a bounded drop-oldest queue (default 100)
//   - Broadcasts every published price to all registered queues
//   - Prunes subscribers whose queues are closed
//   - Serves streaming sessions: snapshot replay, then live relay
package feed
