package web

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// priceResponse is the success envelope for price queries.
type priceResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Prices  map[string]decimal.Decimal `json:"prices"`
}

// tickersResponse is the success envelope for the ticker listing.
type tickersResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Tickers []string `json:"tickers"`
}

// problemResponse is the error body for failed queries.
type problemResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

func (s *Server) handleGetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")

	price, err := s.pricing.GetPrice(ticker)
	if err != nil {
		writeJSON(w, http.StatusNotFound, problemResponse{
			Title:  "Price Retrieve Failed",
			Detail: err.Error(),
			Status: http.StatusNotFound,
		})
		return
	}

	writeJSON(w, http.StatusOK, priceResponse{
		Success: true,
		Message: "Price Retrieved",
		Prices:  map[string]decimal.Decimal{ticker: price},
	})
}

func (s *Server) handleGetAllPrices(w http.ResponseWriter, r *http.Request) {
	prices := s.pricing.AllPrices()
	if len(prices) == 0 {
		writeJSON(w, http.StatusNotFound, problemResponse{
			Title:  "Price Retrieve Failed",
			Detail: "No Prices Found",
			Status: http.StatusNotFound,
		})
		return
	}

	writeJSON(w, http.StatusOK, priceResponse{
		Success: true,
		Message: "Prices Retrieved",
		Prices:  prices,
	})
}

func (s *Server) handleGetTickers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tickersResponse{
		Success: true,
		Message: "Tickers Retrieved",
		Tickers: s.pricing.Tickers(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.publisher.Stats()

	health := struct {
		Status      string `json:"status"`
		Prices      int    `json:"prices"`
		Subscribers int    `json:"subscribers"`
		Published   int64  `json:"published"`
	}{
		Status:      "healthy",
		Prices:      len(s.pricing.AllPrices()),
		Subscribers: stats.Subscribers,
		Published:   stats.Published,
	}

	// No cached prices yet means the refresher has not completed a
	// successful cycle.
	if health.Prices == 0 {
		health.Status = "degraded"
	}

	writeJSON(w, http.StatusOK, health)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
