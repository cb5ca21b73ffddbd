package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/updown/internal/domain"
)

var testNow = time.Unix(1_700_000_000, 0)

func makeBook(bid, ask, size float64) domain.OrderBook {
	return domain.OrderBook{
		Bids: []domain.BookEntry{{Price: bid, Size: size}},
		Asks: []domain.BookEntry{{Price: ask, Size: size}},
	}
}

func makeMarket() domain.Market {
	return domain.Market{
		ConditionID: "0xtest",
		Symbol:      "BTC",
		Question:    "BTC up or down?",
		YesTokenID:  "yes",
		NoTokenID:   "no",
		Active:      true,
	}
}

func TestArbEdge_RawIsExact(t *testing.T) {
	p := DefaultParams()

	raw, net := ArbEdge(0.48, 0.49, p)
	assert.InDelta(t, 0.03, raw, 1e-12)
	assert.LessOrEqual(t, net, raw)
}

func TestDetectArbitrage_EndToEnd(t *testing.T) {
	p := DefaultParams()
	// Representative size = (500+1500)/2 = 1000 for a clean fee figure.
	p.MinTradeUSD = 500
	p.MaxTradeUSD = 1500

	yes := makeBook(0.46, 0.48, 200)
	no := makeBook(0.47, 0.49, 200)

	opp, ok := DetectArbitrage(makeMarket(), yes, no, 120, testNow, p)
	require.True(t, ok)

	// total fees = 0.00245 at size 1000; net = 1 - 0.97 - 0.00245
	assert.InDelta(t, 0.03, opp.RawEdge, 1e-9)
	assert.InDelta(t, 0.02755, opp.NetEdge, 1e-9)
	assert.Equal(t, domain.KindArbitrage, opp.Kind)
	assert.Equal(t, "BTC", opp.Symbol)
	assert.NotEmpty(t, opp.ID)
}

func TestDetectArbitrage_ThresholdIsInclusive(t *testing.T) {
	p := DefaultParams()
	// Zero fees and power-of-two prices keep every float exact, so
	// net == threshold holds bit for bit.
	p.Fees = domain.FeeParams{}
	p.ArbThresholdBPS = 2500

	yes := makeBook(0.20, 0.25, 100)
	no := makeBook(0.45, 0.50, 100)

	opp, ok := DetectArbitrage(makeMarket(), yes, no, 60, testNow, p)
	require.True(t, ok, "boundary net_edge == threshold must emit")
	assert.Equal(t, 0.25, opp.NetEdge)
	assert.Equal(t, opp.RawEdge, opp.NetEdge)
}

func TestDetectArbitrage_BelowThreshold(t *testing.T) {
	p := DefaultParams()

	yes := makeBook(0.49, 0.50, 100)
	no := makeBook(0.49, 0.50, 100)

	_, ok := DetectArbitrage(makeMarket(), yes, no, 60, testNow, p)
	assert.False(t, ok)
}

func TestDetectArbitrage_MissingSide(t *testing.T) {
	p := DefaultParams()

	yes := makeBook(0.40, 0.45, 100)
	_, ok := DetectArbitrage(makeMarket(), yes, domain.OrderBook{}, 60, testNow, p)
	assert.False(t, ok, "empty NO book yields ask 0, no detection")
}

func TestDetectSnipe_OutsideWindow(t *testing.T) {
	p := DefaultParams()

	yes := makeBook(0.80, 0.85, 100)
	no := makeBook(0.05, 0.10, 100)

	_, ok := DetectSnipe(makeMarket(), yes, no, 120, testNow, p)
	assert.False(t, ok, "window is 15s, 120s left must not fire")

	_, ok = DetectSnipe(makeMarket(), yes, no, 0, testNow, p)
	assert.False(t, ok, "period already closed")
}

func TestDetectSnipe_PicksHighestAskNotHighestEdge(t *testing.T) {
	p := DefaultParams()

	// Both sides clear the 0.05 edge threshold. NO has the bigger edge
	// (cheaper ask) but YES has the higher ask — higher confidence wins.
	yes := makeBook(0.78, 0.80, 100)
	no := makeBook(0.08, 0.10, 100)

	opp, ok := DetectSnipe(makeMarket(), yes, no, 10, testNow, p)
	require.True(t, ok)
	assert.Equal(t, domain.SideYes, opp.Side)
	assert.Equal(t, 0.80, opp.Price)
	assert.InDelta(t, 1.0-0.80-p.Fees.SingleLegFeeFraction(p.MaxTradeUSD), opp.Edge, 1e-9)
}

func TestDetectSnipe_NoSideClearsThreshold(t *testing.T) {
	p := DefaultParams()

	// Asks near 1.0 leave no edge.
	yes := makeBook(0.95, 0.97, 100)
	no := makeBook(0.95, 0.96, 100)

	_, ok := DetectSnipe(makeMarket(), yes, no, 10, testNow, p)
	assert.False(t, ok)
}

func TestDetectMispriced_FlagsDeepDiscount(t *testing.T) {
	p := DefaultParams()

	yes := domain.OrderBook{Asks: []domain.BookEntry{
		{Price: 0.97, Size: 100},
		{Price: 0.97, Size: 50},
		{Price: 0.04, Size: 20},
	}}

	opps := DetectMispriced(makeMarket(), yes, domain.OrderBook{}, 60, testNow, p)
	require.Len(t, opps, 1)

	opp := opps[0]
	assert.Equal(t, domain.KindMispriced, opp.Kind)
	assert.Equal(t, domain.SideYes, opp.Side)
	assert.Equal(t, 0.04, opp.Price)
	assert.Equal(t, 0.97, opp.ClusterPrice)
	assert.InDelta(t, 95.9, opp.DiscountPct, 0.1)
	assert.InDelta(t, 0.93, opp.EstProfitPerShare, 1e-9)
}

func TestDetectMispriced_AbsoluteGapGuard(t *testing.T) {
	p := DefaultParams()

	// 0.039 <= 0.5*0.08 passes the ratio check, but the cluster is so low
	// that the 0.10 absolute gap can never be met.
	yes := domain.OrderBook{Asks: []domain.BookEntry{
		{Price: 0.08, Size: 100},
		{Price: 0.08, Size: 50},
		{Price: 0.039, Size: 20},
	}}

	opps := DetectMispriced(makeMarket(), yes, domain.OrderBook{}, 60, testNow, p)
	assert.Empty(t, opps)
}

func TestDetectMispriced_MinSizeFilter(t *testing.T) {
	p := DefaultParams()

	yes := domain.OrderBook{Asks: []domain.BookEntry{
		{Price: 0.97, Size: 100},
		{Price: 0.97, Size: 50},
		{Price: 0.04, Size: 5}, // below min_size 10
	}}

	opps := DetectMispriced(makeMarket(), yes, domain.OrderBook{}, 60, testNow, p)
	assert.Empty(t, opps)
}

func TestDetectMispriced_BothSidesSortedAscending(t *testing.T) {
	p := DefaultParams()

	yes := domain.OrderBook{Asks: []domain.BookEntry{
		{Price: 0.90, Size: 300},
		{Price: 0.90, Size: 100},
		{Price: 0.30, Size: 20},
		{Price: 0.20, Size: 20},
	}}
	no := domain.OrderBook{Asks: []domain.BookEntry{
		{Price: 0.85, Size: 200},
		{Price: 0.85, Size: 60},
		{Price: 0.10, Size: 15},
	}}

	opps := DetectMispriced(makeMarket(), yes, no, 60, testNow, p)
	require.Len(t, opps, 3)

	// YES hits first, cheapest first, then NO.
	assert.Equal(t, domain.SideYes, opps[0].Side)
	assert.Equal(t, 0.20, opps[0].Price)
	assert.Equal(t, 0.30, opps[1].Price)
	assert.Equal(t, domain.SideNo, opps[2].Side)
	assert.Equal(t, 0.10, opps[2].Price)
}

func TestDetectMispriced_SingleEntryBook(t *testing.T) {
	p := DefaultParams()

	yes := domain.OrderBook{Asks: []domain.BookEntry{{Price: 0.04, Size: 50}}}
	opps := DetectMispriced(makeMarket(), yes, domain.OrderBook{}, 60, testNow, p)
	assert.Empty(t, opps, "one entry has no cluster to deviate from")
}

func TestRepresentativeTradeSize(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, (p.MinTradeUSD+p.MaxTradeUSD)/2, p.RepresentativeTradeSize())
}
