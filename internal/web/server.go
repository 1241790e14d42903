package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rickgao/pricefeed/internal/feed"
	"github.com/rickgao/pricefeed/internal/pricing"
)

// Server exposes the query and streaming boundaries over HTTP.
type Server struct {
	pricing   *pricing.Service
	publisher *feed.Publisher
	logger    *slog.Logger

	httpServer *http.Server
}

// NewServer creates the HTTP server for the given address.
func NewServer(addr string, pricingSvc *pricing.Service, publisher *feed.Publisher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		pricing:   pricingSvc,
		publisher: publisher,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/price/{ticker}", s.handleGetPrice)
	mux.HandleFunc("GET /api/prices", s.handleGetAllPrices)
	mux.HandleFunc("GET /api/tickers", s.handleGetTickers)
	mux.HandleFunc("GET /ws", s.handleStream)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
