package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadTrackedTickers reads the tracked ticker symbols from the
// tracked_tickers table. Called once at startup; the universe is not
// reloaded afterwards.
func LoadTrackedTickers(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx, `SELECT ticker FROM tracked_tickers ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("query tracked tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tracked tickers: %w", err)
	}

	return tickers, nil
}
