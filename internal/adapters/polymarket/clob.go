package polymarket

import (
	"context"
	"fmt"
	"net/url"

	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/ports"
)

const bookPath = "/book"

// FetchOrderBook returns the current CLOB book for a token. The snapshot
// fully replaces whatever the caller cached — books are never merged.
func (c *Client) FetchOrderBook(ctx context.Context, tokenID string) (domain.OrderBook, error) {
	if tokenID == "" {
		return domain.OrderBook{}, ports.ErrMarketNotFound
	}

	u := fmt.Sprintf("%s%s?token_id=%s", c.clobBase, bookPath, url.QueryEscape(tokenID))

	var resp bookResponse
	if err := c.get(ctx, c.bookLimiter, u, &resp); err != nil {
		return domain.OrderBook{}, fmt.Errorf("clob.FetchOrderBook: %w", err)
	}

	return mapOrderBook(tokenID, resp), nil
}
