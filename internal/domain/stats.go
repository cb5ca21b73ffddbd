package domain

import "time"

// StrategyStats is the per-strategy slice of the running totals.
type StrategyStats struct {
	Opportunities int
	Trades        int
	PnL           float64
}

// SessionStats holds the process-wide running totals. Mutated only by
// the orchestrator (single-writer), additively per trade/opportunity,
// and reset only by an explicit session reset.
type SessionStats struct {
	StartedAt          time.Time
	TotalPnL           float64
	TotalTrades        int
	TotalOpportunities int
	PeriodTransitions  int
	ByStrategy         map[StrategyKind]*StrategyStats
}

// NewSessionStats returns zeroed stats with all strategy buckets present.
func NewSessionStats(now time.Time) *SessionStats {
	by := make(map[StrategyKind]*StrategyStats, 3)
	for _, k := range Kinds() {
		by[k] = &StrategyStats{}
	}
	return &SessionStats{StartedAt: now, ByStrategy: by}
}

// RecordOpportunity bumps the aggregate and per-strategy opportunity
// counters.
func (s *SessionStats) RecordOpportunity(kind StrategyKind) {
	s.TotalOpportunities++
	if b, ok := s.ByStrategy[kind]; ok {
		b.Opportunities++
	}
}

// RecordTrade folds one filled trade into the totals. Rejected trades
// are recorded in history only, never here.
func (s *SessionStats) RecordTrade(t SimulatedTrade) {
	if !t.Filled() {
		return
	}
	s.TotalTrades++
	s.TotalPnL += t.NetPnL
	if b, ok := s.ByStrategy[t.Kind]; ok {
		b.Trades++
		b.PnL += t.NetPnL
	}
}

// PnLPoint is one sample of the cumulative P&L series, produced after
// every filled trade. Charting it is a presentation concern.
type PnLPoint struct {
	At            time.Time
	CumulativePnL float64
}
