package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TickerPlaceholder is the substring of the URL template replaced by
// the requested symbol.
const TickerPlaceholder = "[Ticker]"

// ErrEmptyTicker is returned when GetQuote is called without a symbol.
var ErrEmptyTicker = errors.New("ticker cannot be empty")

// Quote is one price observation for a ticker. The upstream payload
// uses short keys: c=current, h=high, l=low, o=open, pc=prev close.
// A missing price field decodes to zero; the caller treats any
// non-positive Current as "no new information".
type Quote struct {
	Current   decimal.Decimal `json:"c"`
	High      decimal.Decimal `json:"h"`
	Low       decimal.Decimal `json:"l"`
	Open      decimal.Decimal `json:"o"`
	PrevClose decimal.Decimal `json:"pc"`
}

// APIError represents an HTTP-level error from the price source.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quote api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// GetQuote fetches the current quote for a single ticker.
func (c *Client) GetQuote(ctx context.Context, ticker string) (Quote, error) {
	if strings.TrimSpace(ticker) == "" {
		return Quote{}, ErrEmptyTicker
	}

	body, err := c.doWithRetry(ctx, c.requestURL(ticker))
	if err != nil {
		return Quote{}, err
	}

	var q Quote
	if err := json.Unmarshal(body, &q); err != nil {
		return Quote{}, fmt.Errorf("unmarshal quote for %s: %w", ticker, err)
	}

	return q, nil
}

// requestURL substitutes the ticker into the URL template.
func (c *Client) requestURL(ticker string) string {
	return strings.ReplaceAll(c.urlTemplate, TickerPlaceholder, url.QueryEscape(ticker))
}

// doRequest performs a single GET against the resolved URL.
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// doWithRetry performs a request with exponential backoff retry.
func (c *Client) doWithRetry(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Debug("retrying quote request",
				"attempt", attempt,
				"backoff", jitter,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		body, err := c.doRequest(ctx, fullURL)
		if err == nil {
			return body, nil
		}

		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
