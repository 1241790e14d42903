package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultQuoteTimeout    = 10 * time.Second
	DefaultMaxRetries      = 3
	DefaultRefreshInterval = 30 * time.Second
	DefaultConcurrency     = 10
	DefaultFetchTimeout    = 10 * time.Second
	DefaultQueueCapacity   = 100
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultServerAddr      = ":8080"
)

func (c *Config) applyDefaults() {
	// Quote defaults
	if c.Quote.Timeout == 0 {
		c.Quote.Timeout = DefaultQuoteTimeout
	}
	if c.Quote.MaxRetries == 0 {
		c.Quote.MaxRetries = DefaultMaxRetries
	}

	// Refresher defaults
	if c.Refresher.Interval == 0 {
		c.Refresher.Interval = DefaultRefreshInterval
	}
	if c.Refresher.Concurrency == 0 {
		c.Refresher.Concurrency = DefaultConcurrency
	}
	if c.Refresher.Timeout == 0 {
		c.Refresher.Timeout = DefaultFetchTimeout
	}

	// Feed defaults
	if c.Feed.QueueCapacity == 0 {
		c.Feed.QueueCapacity = DefaultQueueCapacity
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}
