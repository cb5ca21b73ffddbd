package domain

import "time"

// TradeStatus is the outcome of a simulated execution.
type TradeStatus string

const (
	TradeFilled   TradeStatus = "filled"
	TradeRejected TradeStatus = "rejected"
)

// SimulatedTrade is the result of executing one Opportunity against the
// probabilistic fill model. Immutable; appended to the bounded trade
// history and folded into the running aggregates.
type SimulatedTrade struct {
	ID         string
	Status     TradeStatus
	Reason     string // set when rejected
	Kind       StrategyKind
	Symbol     string
	Side       Side
	SizeUSD    float64 // size actually filled, in USD
	Shares     float64
	CostBasis  float64 // per-set or per-share cost incl. slippage
	GrossPnL   float64
	NetPnL     float64
	EdgePct    float64
	ExecutedAt time.Time
	TimeLeft   float64
}

// Filled reports whether the trade went through.
func (t SimulatedTrade) Filled() bool {
	return t.Status == TradeFilled
}
