package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Subscribers are unauthenticated; any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsPriceUpdate is the wire format for one streamed update.
type wsPriceUpdate struct {
	Symbol     string          `json:"symbol"`
	Price      decimal.Decimal `json:"price"`
	ObservedAt time.Time       `json:"observed_at"`
}

// handleStream upgrades the connection and relays a streaming session:
// snapshot replay first, then live updates until the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Read pump: the client sends nothing meaningful, but reading is
	// required to notice close frames and broken connections.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.logger.Info("price stream client connected", "remote", conn.RemoteAddr())

	for update := range s.publisher.Stream(ctx) {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(wsPriceUpdate{
			Symbol:     update.Ticker,
			Price:      update.Price,
			ObservedAt: update.ObservedAt,
		}); err != nil {
			s.logger.Info("price stream client disconnected", "remote", conn.RemoteAddr(), "error", err)
			return
		}
	}
}
