// Package web exposes the service's HTTP surface.
//
// Endpoints:
//   - GET /api/price/{ticker} - latest cached price for one ticker
//   - GET /api/prices         - all cached prices
//   - GET /api/tickers        - the tracked ticker set
//   - GET /ws                 - websocket price stream (snapshot, then live)
//   - GET /health             - liveness and feed counters
package web
