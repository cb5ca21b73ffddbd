package domain

import (
	"fmt"
	"time"
)

// StrategyKind identifies which detector produced an opportunity.
type StrategyKind string

const (
	KindArbitrage StrategyKind = "arb"
	KindSnipe     StrategyKind = "snipe"
	KindMispriced StrategyKind = "mispriced"
)

// Kinds lists all strategies in display order.
func Kinds() []StrategyKind {
	return []StrategyKind{KindArbitrage, KindSnipe, KindMispriced}
}

// Side is the outcome token an opportunity targets.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// Opportunity is one detected pricing anomaly. Immutable after creation;
// appended to the bounded session history and handed straight to the
// execution simulator.
type Opportunity struct {
	ID         string
	Kind       StrategyKind
	Symbol     string
	Question   string
	DetectedAt time.Time
	TimeLeft   float64 // seconds until period close, 0 for general markets

	// Arbitrage
	YesAsk  float64
	NoAsk   float64
	RawEdge float64
	NetEdge float64

	// Snipe + mispriced
	Side  Side
	Price float64
	Edge  float64

	// Mispriced
	Size              float64 // resting size at the flagged level
	ClusterPrice      float64
	DiscountPct       float64
	EstProfitPerShare float64
}

// Label renders the one-line description used in logs and the activity
// feed.
func (o Opportunity) Label() string {
	switch o.Kind {
	case KindArbitrage:
		return fmt.Sprintf("ARB %s: YES@%.3f + NO@%.3f = %.3f (net %.2f%%)",
			o.Symbol, o.YesAsk, o.NoAsk, o.YesAsk+o.NoAsk, o.NetEdge*100)
	case KindSnipe:
		return fmt.Sprintf("SNIPE %s: BUY %s@%.3f (%.0fs left, edge %.1fc)",
			o.Symbol, o.Side, o.Price, o.TimeLeft, o.Edge*100)
	case KindMispriced:
		return fmt.Sprintf("MISPRICED %s %s@%.3f (cluster %.3f, discount %.0f%%)",
			o.Symbol, o.Side, o.Price, o.ClusterPrice, o.DiscountPct)
	}
	return string(o.Kind)
}
