package strategy

import (
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/updown/internal/domain"
)

// ArbEdge computes the raw and net edge of buying one full YES+NO set at
// the given asks. raw = 1 - (yes + no); net subtracts the two-leg fee
// fraction at the representative trade size.
func ArbEdge(yesAsk, noAsk float64, p Params) (raw, net float64) {
	raw = 1.0 - (yesAsk + noAsk)
	net = raw - p.Fees.TotalFeeFraction(p.RepresentativeTradeSize())
	return raw, net
}

// DetectArbitrage checks whether buying both sides of the market costs
// less than the $1.00 the merged set redeems for, after fees. Emits iff
// net edge clears the threshold — the boundary case (net == threshold)
// emits.
func DetectArbitrage(m domain.Market, yesBook, noBook domain.OrderBook, timeLeft float64, now time.Time, p Params) (domain.Opportunity, bool) {
	yesAsk := yesBook.BestAsk()
	noAsk := noBook.BestAsk()
	if yesAsk <= 0 || noAsk <= 0 {
		return domain.Opportunity{}, false
	}

	raw, net := ArbEdge(yesAsk, noAsk, p)
	if net < p.ArbThresholdBPS/10000 {
		return domain.Opportunity{}, false
	}

	return domain.Opportunity{
		ID:         uuid.New().String(),
		Kind:       domain.KindArbitrage,
		Symbol:     m.Name(),
		Question:   m.Question,
		DetectedAt: now,
		TimeLeft:   timeLeft,
		YesAsk:     yesAsk,
		NoAsk:      noAsk,
		RawEdge:    raw,
		NetEdge:    net,
	}, true
}
