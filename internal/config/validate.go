package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 && !c.Database.Enabled {
		return errors.New("tickers is required when database is disabled")
	}

	if c.Quote.URL == "" {
		return errors.New("quote.url is required")
	}
	if !strings.Contains(c.Quote.URL, "[Ticker]") {
		return errors.New("quote.url must contain the [Ticker] placeholder")
	}

	if c.Refresher.Interval <= 0 {
		return errors.New("refresher.interval must be positive")
	}
	if c.Refresher.Concurrency < 1 {
		return errors.New("refresher.concurrency must be >= 1")
	}

	if c.Feed.QueueCapacity < 1 {
		return errors.New("feed.queue_capacity must be >= 1")
	}

	if c.Database.Enabled {
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DatabaseConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
