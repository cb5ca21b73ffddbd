package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/updown/internal/adapters/storage"
	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/ports"
)

func makeReport() ports.CycleReport {
	now := time.Now().UTC().Truncate(time.Second)
	return ports.CycleReport{
		PeriodStart: 1_700_000_100,
		TimeLeft:    180,
		Rotated:     true,
		Opportunities: []domain.Opportunity{
			{
				ID:         "opp-1",
				Kind:       domain.KindArbitrage,
				Symbol:     "BTC",
				DetectedAt: now,
				YesAsk:     0.48,
				NoAsk:      0.49,
				NetEdge:    0.0275,
			},
			{
				ID:         "opp-2",
				Kind:       domain.KindMispriced,
				Symbol:     "ETH",
				DetectedAt: now,
				Side:       domain.SideNo,
				Price:      0.04,
				Size:       20,
			},
		},
		Trades: []domain.SimulatedTrade{
			{
				ID:         "trade-1",
				Status:     domain.TradeFilled,
				Kind:       domain.KindArbitrage,
				Symbol:     "BTC",
				SizeUSD:    500,
				NetPnL:     12.5,
				ExecutedAt: now,
			},
			{
				ID:         "trade-2",
				Status:     domain.TradeRejected,
				Reason:     "cost >= 1.0",
				Kind:       domain.KindMispriced,
				Symbol:     "ETH",
				ExecutedAt: now,
			},
		},
	}
}

func TestSQLiteStorage_SaveCycleAndSummary(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SaveCycle(context.Background(), makeReport()))

	stats, err := db.GetSessionSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalOpportunities)
	assert.Equal(t, 1, stats.TotalTrades, "rejected trades never count")
	assert.InDelta(t, 12.5, stats.TotalPnL, 1e-9)
	assert.Equal(t, 1, stats.PeriodTransitions)
	assert.Equal(t, 1, stats.ByStrategy[domain.KindArbitrage].Opportunities)
	assert.Equal(t, 1, stats.ByStrategy[domain.KindMispriced].Opportunities)
	assert.Equal(t, 0, stats.ByStrategy[domain.KindMispriced].Trades)
}

func TestSQLiteStorage_SaveEmptyCycle(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = db.SaveCycle(context.Background(), ports.CycleReport{PeriodStart: 900})
	assert.NoError(t, err)

	stats, err := db.GetSessionSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOpportunities)
	assert.Zero(t, stats.TotalTrades)
}

func TestSQLiteStorage_DuplicateIDsIgnored(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	report := makeReport()
	require.NoError(t, db.SaveCycle(context.Background(), report))
	require.NoError(t, db.SaveCycle(context.Background(), report))

	stats, err := db.GetSessionSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOpportunities, "same ids insert once")
	assert.Equal(t, 1, stats.TotalTrades)
	assert.Equal(t, 2, stats.PeriodTransitions, "cycle rows still accumulate")
}
