package polymarket

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/ports"
)

const (
	gammaMarketsPath = "/markets"

	// Discovery pagination. A 200-market page keeps the number of Gamma
	// calls low at a reasonable payload size.
	discoveryPageSize = 200
	// Safety cap when the caller asks for "all" markets.
	absoluteMaxMarkets = 500
)

// updownSlug builds the well-known slug of a 5-minute up/down market:
// {symbol}-updown-5m-{periodStart}.
func updownSlug(symbol string, periodStart int64) string {
	return fmt.Sprintf("%s-updown-5m-%d", strings.ToLower(symbol), periodStart)
}

// FetchMarket resolves the up/down market for symbol in the period
// starting at periodStart. ErrMarketNotFound is a normal outcome during
// the transition window — the next market often appears a few seconds
// late.
func (c *Client) FetchMarket(ctx context.Context, symbol string, periodStart int64) (domain.Market, error) {
	slug := updownSlug(symbol, periodStart)
	m, err := c.fetchBySlug(ctx, slug)
	if err != nil {
		return domain.Market{}, err
	}
	m.Symbol = strings.ToUpper(symbol)
	m.PeriodStart = periodStart
	return m, nil
}

// FetchMarketBySlug resolves one market by slug (pinned markets).
func (c *Client) FetchMarketBySlug(ctx context.Context, slug string) (domain.Market, error) {
	return c.fetchBySlug(ctx, slug)
}

func (c *Client) fetchBySlug(ctx context.Context, slug string) (domain.Market, error) {
	u := fmt.Sprintf("%s%s?slug=%s", c.gammaBase, gammaMarketsPath, url.QueryEscape(slug))

	var resp []gammaMarket
	if err := c.get(ctx, c.gammaLimiter, u, &resp); err != nil {
		return domain.Market{}, fmt.Errorf("gamma.fetchBySlug %q: %w", slug, err)
	}
	if len(resp) == 0 {
		return domain.Market{}, ports.ErrMarketNotFound
	}

	m, ok := mapGammaMarket(resp[0])
	if !ok {
		// Wrong outcome count or unparseable tokens: treat as absent.
		return domain.Market{}, ports.ErrMarketNotFound
	}
	return m, nil
}

// FetchBinaryMarkets discovers active binary markets ordered by volume
// descending, filtered to minVolumeUSD. max == 0 means all, bounded by
// the absolute safety cap. Non-binary markets (outcome count != 2) are
// skipped.
func (c *Client) FetchBinaryMarkets(ctx context.Context, minVolumeUSD float64, max int) ([]domain.Market, error) {
	limit := max
	if limit <= 0 {
		limit = absoluteMaxMarkets
	}

	var out []domain.Market
	for offset := 0; ; offset += discoveryPageSize {
		u := fmt.Sprintf(
			"%s%s?active=true&closed=false&limit=%d&offset=%d&order=volume&ascending=false&volume_num_min=%.0f",
			c.gammaBase, gammaMarketsPath, discoveryPageSize, offset, minVolumeUSD,
		)

		var page []gammaMarket
		if err := c.get(ctx, c.gammaLimiter, u, &page); err != nil {
			return nil, fmt.Errorf("gamma.FetchBinaryMarkets offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		for _, gm := range page {
			m, ok := mapGammaMarket(gm)
			if !ok || m.Volume < minVolumeUSD {
				continue
			}
			out = append(out, m)
			if len(out) >= limit {
				return out, nil
			}
		}

		if len(page) < discoveryPageSize {
			break
		}
	}
	return out, nil
}
