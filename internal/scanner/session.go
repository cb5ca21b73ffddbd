package scanner

import (
	"time"

	"github.com/alejandrodnm/updown/internal/domain"
)

const defaultHistorySize = 200

// Session is the explicit state object for one scanning run: running
// aggregates, bounded histories, and the cumulative P&L series. It is
// passed into the scan cycle rather than living as package state, so a
// single cycle can be unit tested in isolation. Single-writer: only the
// orchestrator mutates it.
type Session struct {
	Stats         *domain.SessionStats
	Opportunities *History[domain.Opportunity]
	Trades        *History[domain.SimulatedTrade]
	PnLSeries     []domain.PnLPoint
}

// NewSession returns a fresh session with bounded histories.
func NewSession(now time.Time) *Session {
	return &Session{
		Stats:         domain.NewSessionStats(now),
		Opportunities: NewHistory[domain.Opportunity](defaultHistorySize),
		Trades:        NewHistory[domain.SimulatedTrade](defaultHistorySize),
	}
}

// Reset wipes all session state, as if the process had just started.
func (s *Session) Reset(now time.Time) {
	s.Stats = domain.NewSessionStats(now)
	s.Opportunities = NewHistory[domain.Opportunity](defaultHistorySize)
	s.Trades = NewHistory[domain.SimulatedTrade](defaultHistorySize)
	s.PnLSeries = nil
}

// recordOpportunity appends to history and bumps counters.
func (s *Session) recordOpportunity(opp domain.Opportunity) {
	s.Opportunities.Push(opp)
	s.Stats.RecordOpportunity(opp.Kind)
}

// recordTrade appends to history, folds a fill into the aggregates, and
// samples the cumulative P&L series after every filled trade.
func (s *Session) recordTrade(t domain.SimulatedTrade) {
	s.Trades.Push(t)
	if !t.Filled() {
		return
	}
	s.Stats.RecordTrade(t)
	s.PnLSeries = append(s.PnLSeries, domain.PnLPoint{
		At:            t.ExecutedAt,
		CumulativePnL: s.Stats.TotalPnL,
	})
}
