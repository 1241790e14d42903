// streamwatch connects to a running pricefeed instance and prints the
// price stream to the console.
// Usage: go run ./cmd/streamwatch --addr localhost:8080
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "pricefeed host:port")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	logger.Info("connecting", "url", u.String())

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		logger.Error("dial failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Close the connection on cancellation to unblock the read loop.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	type priceUpdate struct {
		Symbol     string `json:"symbol"`
		Price      string `json:"price"`
		ObservedAt string `json:"observed_at"`
	}

	for {
		var update priceUpdate
		if err := conn.ReadJSON(&update); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("read failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("%s  %-6s %s\n", update.ObservedAt, update.Symbol, update.Price)
	}
}
