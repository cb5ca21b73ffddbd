// Package rotation tracks the active 5-minute period across all symbols
// and keeps market metadata and order books fresh as periods roll over.
// Periods roll in lockstep — every symbol shares the same clock grid —
// so a rotation clears and refetches everything at once.
package rotation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/ports"
)

const defaultFetchDelay = 100 * time.Millisecond

// Config controls which markets the controller tracks.
type Config struct {
	Symbols      []string
	PeriodLength time.Duration
	FetchDelay   time.Duration // pause between sequential provider calls

	// General binary market discovery (refreshed on rotation).
	DiscoverGeneral bool
	MinVolumeUSD    float64
	MaxMarkets      int
	PinnedSlug      string
}

// Books pairs the two sides of one market's order flow.
type Books struct {
	Yes domain.OrderBook
	No  domain.OrderBook
}

// Tracked is one market ready for scanning: metadata plus both books.
type Tracked struct {
	Market    domain.Market
	Books     Books
	HasPeriod bool // false for discovered general markets
}

// Controller owns all MarketPeriod and market-snapshot state. It is not
// safe for concurrent use; the orchestrator is its only caller.
type Controller struct {
	cfg     Config
	markets ports.MarketProvider
	books   ports.BookProvider

	periodStart  int64
	transitions  int
	snapshots    map[string]domain.Market // symbol -> metadata for this period
	symbolBooks  map[string]Books         // symbol -> latest books
	general      []domain.Market
	generalBooks map[string]Books // conditionID -> latest books
}

// New creates a Controller. Defaults: 300s periods, 100ms fetch delay.
func New(cfg Config, markets ports.MarketProvider, books ports.BookProvider) *Controller {
	if cfg.PeriodLength <= 0 {
		cfg.PeriodLength = domain.DefaultPeriodSeconds * time.Second
	}
	if cfg.FetchDelay <= 0 {
		cfg.FetchDelay = defaultFetchDelay
	}
	return &Controller{
		cfg:          cfg,
		markets:      markets,
		books:        books,
		snapshots:    make(map[string]domain.Market),
		symbolBooks:  make(map[string]Books),
		generalBooks: make(map[string]Books),
	}
}

// Reconcile advances the period state machine for the given instant.
// On a period transition it clears every symbol's cache, bumps the
// transition counter, and eagerly refetches all metadata. Otherwise it
// refreshes order books only — cheaper than a full metadata pass.
func (c *Controller) Reconcile(ctx context.Context, now time.Time) (rotated bool, err error) {
	start := domain.PeriodStart(now, c.cfg.PeriodLength)

	switch {
	case start != c.periodStart:
		slog.Info("period rotation",
			"prev", c.periodStart,
			"next", start,
			"at", time.Unix(start, 0).UTC().Format("15:04"),
		)
		c.periodStart = start
		c.transitions++
		c.snapshots = make(map[string]domain.Market)
		c.symbolBooks = make(map[string]Books)
		c.refreshMetadata(ctx, start)
		c.refreshDiscovery(ctx)
		rotated = true

	case len(c.snapshots) == 0:
		// First cycle of a session that started mid-period.
		c.refreshMetadata(ctx, start)
		c.refreshDiscovery(ctx)
	}

	c.refreshBooks(ctx)
	return rotated, ctx.Err()
}

// TimeRemaining returns seconds until the current period closes.
func (c *Controller) TimeRemaining(now time.Time) float64 {
	if c.periodStart == 0 {
		return 0
	}
	p := domain.Period{Start: c.periodStart, End: c.periodStart + int64(c.cfg.PeriodLength.Seconds())}
	return p.TimeRemaining(now)
}

// PeriodStart returns the active period's start, 0 before the first
// reconcile.
func (c *Controller) PeriodStart() int64 { return c.periodStart }

// Transitions returns how many period boundaries have been crossed.
func (c *Controller) Transitions() int { return c.transitions }

// Markets returns every tracked market that has at least one non-empty
// book this cycle: period markets first, discovered markets after.
func (c *Controller) Markets() []Tracked {
	out := make([]Tracked, 0, len(c.snapshots)+len(c.general))
	for _, sym := range c.cfg.Symbols {
		m, ok := c.snapshots[sym]
		if !ok || !m.Tradeable() {
			continue
		}
		books := c.symbolBooks[sym]
		if books.Yes.Empty() && books.No.Empty() {
			continue
		}
		out = append(out, Tracked{Market: m, Books: books, HasPeriod: true})
	}
	for _, m := range c.general {
		if !m.Tradeable() {
			continue
		}
		books, ok := c.generalBooks[m.ConditionID]
		if !ok || (books.Yes.Empty() && books.No.Empty()) {
			continue
		}
		out = append(out, Tracked{Market: m, Books: books})
	}
	return out
}

// refreshMetadata refetches the up/down market for every symbol in the
// given period. A failed fetch during the transition window is normal —
// the market may not exist yet — so the stale snapshot is marked closed
// instead of erroring.
func (c *Controller) refreshMetadata(ctx context.Context, periodStart int64) {
	for _, sym := range c.cfg.Symbols {
		m, err := c.markets.FetchMarket(ctx, sym, periodStart)
		switch {
		case err == nil:
			c.snapshots[sym] = m
		case errors.Is(err, ports.ErrMarketNotFound):
			c.markClosed(sym)
			slog.Debug("market not created yet", "symbol", sym, "period", periodStart)
		default:
			c.markClosed(sym)
			slog.Warn("metadata fetch failed", "symbol", sym, "err", err)
		}
		c.pause(ctx)
	}
}

// markClosed flags a previously cached snapshot as closed so the
// strategy engine skips it this cycle.
func (c *Controller) markClosed(sym string) {
	if m, ok := c.snapshots[sym]; ok {
		m.Closed = true
		c.snapshots[sym] = m
	}
}

// refreshBooks replaces (never merges) the order books of every open
// tracked market. A failed fetch leaves an empty book — no data this
// cycle.
func (c *Controller) refreshBooks(ctx context.Context) {
	for _, sym := range c.cfg.Symbols {
		m, ok := c.snapshots[sym]
		if !ok || m.Closed {
			continue
		}
		c.symbolBooks[sym] = c.fetchPair(ctx, m)
	}
	for _, m := range c.general {
		if m.Closed {
			continue
		}
		c.generalBooks[m.ConditionID] = c.fetchPair(ctx, m)
	}
}

func (c *Controller) fetchPair(ctx context.Context, m domain.Market) Books {
	var books Books
	yes, err := c.books.FetchOrderBook(ctx, m.YesTokenID)
	if err != nil {
		slog.Debug("yes book unavailable", "market", m.Name(), "err", err)
	} else {
		books.Yes = yes
	}
	c.pause(ctx)

	no, err := c.books.FetchOrderBook(ctx, m.NoTokenID)
	if err != nil {
		slog.Debug("no book unavailable", "market", m.Name(), "err", err)
	} else {
		books.No = no
	}
	c.pause(ctx)
	return books
}

// refreshDiscovery reloads the general binary market universe and
// force-includes the pinned market, deduped by condition id.
func (c *Controller) refreshDiscovery(ctx context.Context) {
	if !c.cfg.DiscoverGeneral {
		return
	}

	markets, err := c.markets.FetchBinaryMarkets(ctx, c.cfg.MinVolumeUSD, c.cfg.MaxMarkets)
	if err != nil {
		slog.Warn("market discovery failed, keeping previous universe", "err", err)
		return
	}

	if c.cfg.PinnedSlug != "" {
		pinned, err := c.markets.FetchMarketBySlug(ctx, c.cfg.PinnedSlug)
		if err != nil {
			slog.Warn("pinned market unresolved", "slug", c.cfg.PinnedSlug, "err", err)
		} else {
			deduped := markets[:0]
			for _, m := range markets {
				if m.ConditionID != pinned.ConditionID {
					deduped = append(deduped, m)
				}
			}
			markets = append([]domain.Market{pinned}, deduped...)
		}
	}

	c.general = markets
	c.generalBooks = make(map[string]Books)
	slog.Info("discovery refreshed", "markets", len(markets))
}

// pause sleeps the configured inter-call delay, respecting ctx.
func (c *Controller) pause(ctx context.Context) {
	select {
	case <-time.After(c.cfg.FetchDelay):
	case <-ctx.Done():
	}
}
