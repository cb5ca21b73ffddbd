package strategy

import (
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/updown/internal/domain"
)

// DetectSnipe looks for a stale cheap ask on the eventual winner in the
// final seconds of a period. Near resolution the true outcome probability
// has concentrated near 0 or 1, so a low ask on the likely winner is a
// near-riskless buy.
//
// Among the sides clearing the edge threshold it picks the one with the
// HIGHEST ask — the market-implied confidence of winning — not the
// highest edge: confidence is what determines whether the snipe resolves
// in the money. At most one opportunity per symbol per scan.
func DetectSnipe(m domain.Market, yesBook, noBook domain.OrderBook, timeLeft float64, now time.Time, p Params) (domain.Opportunity, bool) {
	if timeLeft > p.SnipeWindowSecs || timeLeft <= 0 {
		return domain.Opportunity{}, false
	}

	// Gas sized against the max trade: a snipe this close to resolution
	// is worth doing at full size or not at all.
	fee := p.Fees.SingleLegFeeFraction(p.MaxTradeUSD)

	type candidate struct {
		side domain.Side
		ask  float64
		edge float64
	}

	var best *candidate
	consider := func(side domain.Side, ask float64) {
		if ask <= 0 {
			return
		}
		edge := 1.0 - ask - fee
		if edge < p.SnipeThreshold {
			return
		}
		if best == nil || ask > best.ask {
			best = &candidate{side: side, ask: ask, edge: edge}
		}
	}

	consider(domain.SideYes, yesBook.BestAsk())
	consider(domain.SideNo, noBook.BestAsk())

	if best == nil {
		return domain.Opportunity{}, false
	}

	return domain.Opportunity{
		ID:         uuid.New().String(),
		Kind:       domain.KindSnipe,
		Symbol:     m.Name(),
		Question:   m.Question,
		DetectedAt: now,
		TimeLeft:   timeLeft,
		Side:       best.side,
		Price:      best.ask,
		Edge:       best.edge,
	}, true
}
