package ports

import (
	"context"

	"github.com/alejandrodnm/updown/internal/domain"
)

// CycleReport is everything one scan cycle produced, handed to the
// presentation collaborator. Plain structured records — serialization is
// an external concern.
type CycleReport struct {
	Opportunities []domain.Opportunity
	Trades        []domain.SimulatedTrade
	Stats         domain.SessionStats
	TimeLeft      float64
	Rotated       bool
	PeriodStart   int64
}

// Notifier presents scan results to the user.
type Notifier interface {
	Notify(ctx context.Context, report CycleReport) error
}
