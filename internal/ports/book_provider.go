package ports

import (
	"context"

	"github.com/alejandrodnm/updown/internal/domain"
)

// BookProvider fetches order book snapshots from the CLOB.
type BookProvider interface {
	// FetchOrderBook returns the current book for a token. An unknown
	// token yields ErrMarketNotFound; transient failures are retried
	// inside the adapter before surfacing.
	FetchOrderBook(ctx context.Context, tokenID string) (domain.OrderBook, error)
}
