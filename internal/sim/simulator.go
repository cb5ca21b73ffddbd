// Package sim converts detected opportunities into probabilistic paper
// fills: random slippage, partial fills, and a random trade size within
// strategy-specific caps. No orders are ever placed.
package sim

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/updown/internal/domain"
)

// Strategy-specific size caps. Arbitrage can absorb the most capital
// (both books provide depth); a mispriced resting order rarely backs
// more than a few hundred dollars.
const (
	arbSizeCapUSD       = 1500.0
	snipeSizeCapUSD     = 1000.0
	mispricedSizeCapUSD = 500.0

	minFillRatio = 0.75 // partial fills are the norm in thin books
)

// Params bound the randomized execution draws.
type Params struct {
	MinTradeUSD float64
	MaxTradeUSD float64
	SlippagePct float64 // max slippage, percent (0.3 = up to 0.3 cents/share)
	GasMergeUSD float64
}

// Simulator executes opportunities against the fill model. The random
// source is injected so tests can pin the draws.
type Simulator struct {
	params Params
	rng    *rand.Rand
}

// New creates a Simulator. A nil rng gets a time-seeded source.
func New(params Params, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{params: params, rng: rng}
}

// Execute runs one opportunity through the fill model. Three independent
// draws per call: slippage, fill ratio, trade size. The only rejection
// path is the cost side reaching 1.0 after slippage — a legitimate
// outcome, not an error.
func (s *Simulator) Execute(opp domain.Opportunity, now time.Time) domain.SimulatedTrade {
	slip := s.rng.Float64() * s.params.SlippagePct / 100
	fill := minFillRatio + s.rng.Float64()*(1.0-minFillRatio)
	size := s.drawSize(opp.Kind)

	trade := domain.SimulatedTrade{
		ID:         uuid.New().String(),
		Kind:       opp.Kind,
		Symbol:     opp.Symbol,
		Side:       opp.Side,
		ExecutedAt: now,
		TimeLeft:   opp.TimeLeft,
	}

	switch opp.Kind {
	case domain.KindArbitrage:
		// Cost of one full YES+NO set; gas charged once per merge.
		costPerSet := opp.YesAsk + opp.NoAsk + slip
		if costPerSet >= 1.0 {
			return rejected(trade, "slippage killed edge")
		}
		shares := size * fill / costPerSet
		gross := shares * (1.0 - costPerSet)
		trade.SizeUSD = size * fill
		trade.Shares = shares
		trade.CostBasis = costPerSet
		trade.GrossPnL = gross
		trade.NetPnL = gross - s.params.GasMergeUSD
		trade.EdgePct = opp.NetEdge * 100

	case domain.KindSnipe:
		// Single-sided settlement, no merge step: half gas.
		cost := opp.Price + slip
		if cost >= 1.0 {
			return rejected(trade, "cost >= 1.0")
		}
		shares := size * fill / cost
		gross := shares * (1.0 - cost)
		trade.SizeUSD = size * fill
		trade.Shares = shares
		trade.CostBasis = cost
		trade.GrossPnL = gross
		trade.NetPnL = gross - s.params.GasMergeUSD/2
		trade.EdgePct = opp.Edge * 100

	case domain.KindMispriced:
		// Can't buy more than what was actually mispriced; resale at the
		// cluster price is optimistic by construction.
		cost := opp.Price + slip
		if cost >= 1.0 {
			return rejected(trade, "cost >= 1.0")
		}
		avail := size * fill / cost
		if avail > opp.Size {
			avail = opp.Size
		}
		gross := avail * (opp.ClusterPrice - cost)
		trade.SizeUSD = avail * cost
		trade.Shares = avail
		trade.CostBasis = cost
		trade.GrossPnL = gross
		trade.NetPnL = gross - s.params.GasMergeUSD/4
		trade.EdgePct = opp.DiscountPct
	}

	trade.Status = domain.TradeFilled
	return trade
}

// drawSize picks a trade size within the configured bounds, capped per
// strategy.
func (s *Simulator) drawSize(kind domain.StrategyKind) float64 {
	capUSD := arbSizeCapUSD
	switch kind {
	case domain.KindSnipe:
		capUSD = snipeSizeCapUSD
	case domain.KindMispriced:
		capUSD = mispricedSizeCapUSD
	}

	hi := s.params.MaxTradeUSD
	if hi > capUSD {
		hi = capUSD
	}
	lo := s.params.MinTradeUSD
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

func rejected(t domain.SimulatedTrade, reason string) domain.SimulatedTrade {
	t.Status = domain.TradeRejected
	t.Reason = reason
	return t
}
