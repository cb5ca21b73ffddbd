package ports

import (
	"context"
	"errors"

	"github.com/alejandrodnm/updown/internal/domain"
)

// ErrMarketNotFound signals a normal, non-exceptional absence: the market
// for a period has not been created yet, or was already delisted.
var ErrMarketNotFound = errors.New("market not found")

// MarketProvider resolves binary market metadata.
type MarketProvider interface {
	// FetchMarket returns the up/down market for symbol in the period
	// starting at periodStart. Returns ErrMarketNotFound when the market
	// does not exist (yet).
	FetchMarket(ctx context.Context, symbol string, periodStart int64) (domain.Market, error)

	// FetchBinaryMarkets discovers active general binary markets ordered
	// by volume, filtered to minVolumeUSD. max == 0 means "all", subject
	// to the provider's safety cap.
	FetchBinaryMarkets(ctx context.Context, minVolumeUSD float64, max int) ([]domain.Market, error)

	// FetchMarketBySlug resolves one market by its slug. Used to pin a
	// market into the discovery universe. Returns ErrMarketNotFound when
	// the slug does not resolve.
	FetchMarketBySlug(ctx context.Context, slug string) (domain.Market, error)
}
