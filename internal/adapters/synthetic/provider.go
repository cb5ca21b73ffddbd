// Package synthetic generates fake markets and order books so the full
// scan pipeline can run offline (dry-run mode). Prices follow a random
// walk around a per-token anchor; every cycle a small chance of an
// artificial anomaly exercises the detectors end to end.
package synthetic

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/ports"
)

const (
	walkStep = 0.02 // max per-fetch drift of the anchor price
	anomalyP = 0.08 // chance per book fetch of injecting an anomaly
)

// Provider implements ports.MarketProvider and ports.BookProvider with
// generated data. Safe for concurrent use.
type Provider struct {
	mu      sync.Mutex
	rng     *rand.Rand
	anchors map[string]float64 // tokenID -> current mid price
}

// NewProvider creates a synthetic provider. A nil rng gets a time-based
// seed; tests pass a seeded one for reproducible runs.
func NewProvider(rng *rand.Rand) *Provider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Provider{
		rng:     rng,
		anchors: make(map[string]float64),
	}
}

// FetchMarket fabricates the up/down market for a symbol and period.
// Token IDs are deterministic so the anchor survives refetches within
// the same period.
func (p *Provider) FetchMarket(_ context.Context, symbol string, periodStart int64) (domain.Market, error) {
	sym := strings.ToUpper(symbol)
	slug := fmt.Sprintf("%s-updown-5m-%d", strings.ToLower(symbol), periodStart)
	return domain.Market{
		ConditionID: "synthetic-" + slug,
		Slug:        slug,
		Symbol:      sym,
		Question:    fmt.Sprintf("%s up or down in the next 5 minutes?", sym),
		YesTokenID:  slug + "-yes",
		NoTokenID:   slug + "-no",
		YesPrice:    0.5,
		NoPrice:     0.5,
		Volume:      25_000,
		EndDate:     time.Unix(periodStart+domain.DefaultPeriodSeconds, 0).UTC(),
		PeriodStart: periodStart,
		Active:      true,
	}, nil
}

// FetchBinaryMarkets fabricates a small universe of general markets.
func (p *Provider) FetchBinaryMarkets(_ context.Context, minVolumeUSD float64, max int) ([]domain.Market, error) {
	questions := []string{
		"Will it rain in London tomorrow?",
		"Will the next block take over 15 seconds?",
		"Will volume exceed 1M today?",
	}
	if max > 0 && max < len(questions) {
		questions = questions[:max]
	}

	out := make([]domain.Market, 0, len(questions))
	for i, q := range questions {
		vol := 50_000 + float64(i)*10_000
		if vol < minVolumeUSD {
			continue
		}
		slug := fmt.Sprintf("synthetic-general-%d", i)
		out = append(out, domain.Market{
			ConditionID: "synthetic-" + slug,
			Slug:        slug,
			Symbol:      fmt.Sprintf("GEN%d", i),
			Question:    q,
			YesTokenID:  slug + "-yes",
			NoTokenID:   slug + "-no",
			YesPrice:    0.5,
			NoPrice:     0.5,
			Volume:      vol,
			Active:      true,
		})
	}
	return out, nil
}

// FetchMarketBySlug fabricates a pinned market for any slug.
func (p *Provider) FetchMarketBySlug(_ context.Context, slug string) (domain.Market, error) {
	if slug == "" {
		return domain.Market{}, ports.ErrMarketNotFound
	}
	return domain.Market{
		ConditionID: "synthetic-" + slug,
		Slug:        slug,
		Symbol:      "PIN",
		Question:    "Pinned market " + slug,
		YesTokenID:  slug + "-yes",
		NoTokenID:   slug + "-no",
		YesPrice:    0.5,
		NoPrice:     0.5,
		Volume:      100_000,
		Active:      true,
	}, nil
}

// FetchOrderBook returns a book around the token's random-walk anchor,
// occasionally with an injected anomaly.
func (p *Provider) FetchOrderBook(_ context.Context, tokenID string) (domain.OrderBook, error) {
	if tokenID == "" {
		return domain.OrderBook{}, ports.ErrMarketNotFound
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	mid := p.walk(tokenID)

	book := domain.OrderBook{
		TokenID: tokenID,
		Bids:    p.levels(mid-0.01, -0.01, 3),
		Asks:    p.levels(mid+0.01, +0.01, 3),
	}

	if p.rng.Float64() < anomalyP {
		p.inject(&book, mid)
	}
	return book, nil
}

// walk advances the token's anchor one random step, clamped to a band
// that keeps both book sides inside (0, 1).
func (p *Provider) walk(tokenID string) float64 {
	mid, ok := p.anchors[tokenID]
	if !ok {
		mid = 0.35 + p.rng.Float64()*0.30
	}
	mid += (p.rng.Float64()*2 - 1) * walkStep
	if mid < 0.10 {
		mid = 0.10
	}
	if mid > 0.90 {
		mid = 0.90
	}
	p.anchors[tokenID] = mid
	return mid
}

// levels builds n book levels starting at price, stepping by step, with
// random sizes large enough to clear any min-size filter.
func (p *Provider) levels(price, step float64, n int) []domain.BookEntry {
	entries := make([]domain.BookEntry, 0, n)
	for i := 0; i < n; i++ {
		pr := price + float64(i)*step
		if pr <= 0.01 || pr >= 0.99 {
			break
		}
		entries = append(entries, domain.BookEntry{
			Price: pr,
			Size:  50 + p.rng.Float64()*450,
		})
	}
	return entries
}

// inject rewrites the book with one of the anomaly shapes the detectors
// look for: a deep ask cluster with a stray cheap order, or an ask far
// below the rest of the book (which, paired with the opposite token,
// tends to produce a sub-1.00 sum).
func (p *Provider) inject(book *domain.OrderBook, mid float64) {
	if p.rng.Float64() < 0.5 {
		// Mispriced: thick cluster high, one cheap resting order below.
		cluster := mid + 0.05
		if cluster > 0.95 {
			cluster = 0.95
		}
		cheap := cluster * 0.3
		book.Asks = []domain.BookEntry{
			{Price: cheap, Size: 20 + p.rng.Float64()*30},
			{Price: cluster, Size: 400},
			{Price: cluster, Size: 250},
		}
		return
	}
	// Cheap best ask. Arbitrage needs the other side cheap too, so this
	// fires the arb detector only when both tokens draw it close together.
	low := mid - 0.12
	if low < 0.02 {
		low = 0.02
	}
	book.Asks = append([]domain.BookEntry{{Price: low, Size: 200}}, book.Asks...)
}
