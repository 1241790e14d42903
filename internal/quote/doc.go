// Package quote implements the client for the third-party price source.
//
// The client:
//   - Resolves a URL template containing the "[Ticker]" placeholder
//   - Decodes finnhub-style short-key JSON payloads into decimals
//   - Retries 5xx/429 responses with exponential backoff and jitter
//   - Surfaces everything else as a typed *APIError
package quote
