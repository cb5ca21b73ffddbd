package ports

import (
	"context"

	"github.com/alejandrodnm/updown/internal/domain"
)

// Storage persists session records for the exit report and offline
// inspection. The scan loop works fine without it (nil storage).
type Storage interface {
	// SaveCycle persists one cycle's opportunities and simulated trades
	// plus a lightweight summary row.
	SaveCycle(ctx context.Context, report CycleReport) error

	// GetSessionSummary aggregates everything persisted so far.
	GetSessionSummary(ctx context.Context) (domain.SessionStats, error)

	// Close releases the database handle.
	Close() error
}
