package config

import "time"

// Config is the root configuration for the pricefeed service.
type Config struct {
	Tickers   []string        `yaml:"tickers"`
	Quote     QuoteConfig     `yaml:"quote"`
	Refresher RefresherConfig `yaml:"refresher"`
	Feed      FeedConfig      `yaml:"feed"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
}

// QuoteConfig holds third-party price source settings. URL is a
// template containing the literal "[Ticker]" placeholder.
type QuoteConfig struct {
	URL        string        `yaml:"url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// RefresherConfig holds refresh loop settings.
type RefresherConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// FeedConfig holds subscriber fan-out settings.
type FeedConfig struct {
	QueueCapacity int `yaml:"queue_capacity"`
}

// DatabaseConfig holds the optional Postgres connection used to load
// the tracked ticker set at startup. When disabled, the static
// `tickers` list is used instead.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}
