package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/pricefeed/internal/config"
	"github.com/rickgao/pricefeed/internal/database"
	"github.com/rickgao/pricefeed/internal/feed"
	"github.com/rickgao/pricefeed/internal/pricing"
	"github.com/rickgao/pricefeed/internal/quote"
	"github.com/rickgao/pricefeed/internal/refresher"
	"github.com/rickgao/pricefeed/internal/store"
	"github.com/rickgao/pricefeed/internal/universe"
	"github.com/rickgao/pricefeed/internal/version"
	"github.com/rickgao/pricefeed/internal/web"
)

func main() {
	configPath := flag.String("config", "configs/pricefeed.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting pricefeed",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Resolve the tracked ticker set: database when configured,
	// otherwise the static config list.
	tickers := cfg.Tickers
	if cfg.Database.Enabled {
		logger.Info("loading tracked tickers from database",
			"host", cfg.Database.Host,
			"database", cfg.Database.Name,
		)

		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		dbTickers, err := database.LoadTrackedTickers(ctx, pool)
		pool.Close() // the universe is fixed for the process lifetime
		if err != nil {
			logger.Error("failed to load tracked tickers", "error", err)
			os.Exit(1)
		}
		if len(dbTickers) > 0 {
			tickers = dbTickers
		} else {
			logger.Warn("tracked_tickers table is empty, using config list")
		}
	}

	tracked, err := universe.New(tickers)
	if err != nil {
		logger.Error("invalid tracked ticker set", "error", err)
		os.Exit(1)
	}
	logger.Info("tracked set loaded", "tickers", tracked.List())

	// Wire the core: store, fan-out, query service
	priceStore := store.New()
	registry := feed.NewRegistry()
	publisher := feed.NewPublisher(
		feed.Config{QueueCapacity: cfg.Feed.QueueCapacity},
		priceStore,
		registry,
		logger,
	)
	pricingSvc := pricing.NewService(tracked, priceStore, logger)

	// Quote client for the third-party price source
	quoteClient := quote.NewClient(
		cfg.Quote.URL,
		cfg.Quote.APIKey,
		quote.WithLogger(logger),
		quote.WithTimeout(cfg.Quote.Timeout),
		quote.WithRetries(cfg.Quote.MaxRetries, time.Second),
	)

	// Start the refresh loop
	ref := refresher.New(
		refresher.Config{
			Interval:    cfg.Refresher.Interval,
			Concurrency: cfg.Refresher.Concurrency,
			Timeout:     cfg.Refresher.Timeout,
		},
		tracked,
		quoteClient,
		publisher,
		logger,
	)
	if err := ref.Start(ctx); err != nil {
		logger.Error("failed to start refresher", "error", err)
		os.Exit(1)
	}

	// Start the HTTP server
	server := web.NewServer(cfg.Server.Addr, pricingSvc, publisher, logger)
	server.Start()

	logger.Info("pricefeed running",
		"addr", cfg.Server.Addr,
		"tickers", tracked.Len(),
		"refresh_interval", cfg.Refresher.Interval,
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := ref.Stop(shutdownCtx); err != nil {
		logger.Warn("refresher stop timed out", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown error", "error", err)
	}

	logger.Info("pricefeed stopped")
}
