package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestAskBestBid_EmptyBook(t *testing.T) {
	var ob OrderBook
	assert.Equal(t, 0.0, ob.BestAsk())
	assert.Equal(t, 0.0, ob.BestBid())
	assert.True(t, ob.Empty())
	assert.Equal(t, 0.0, ob.Midpoint())
}

func TestBestAsk_UnsortedEntries(t *testing.T) {
	ob := OrderBook{
		Asks: []BookEntry{{Price: 0.55, Size: 10}, {Price: 0.41, Size: 5}, {Price: 0.48, Size: 20}},
		Bids: []BookEntry{{Price: 0.30, Size: 10}, {Price: 0.39, Size: 5}},
	}
	assert.Equal(t, 0.41, ob.BestAsk())
	assert.Equal(t, 0.39, ob.BestBid())
	assert.InDelta(t, 0.40, ob.Midpoint(), 1e-9)
}

func TestClusterPrice_GreatestTotalSizeWins(t *testing.T) {
	entries := []BookEntry{
		{Price: 0.97, Size: 100},
		{Price: 0.97, Size: 50},
		{Price: 0.04, Size: 20},
	}
	price, ok := ClusterPrice(entries)
	require.True(t, ok)
	assert.Equal(t, 0.97, price)
}

func TestClusterPrice_TieBreaksLow(t *testing.T) {
	entries := []BookEntry{
		{Price: 0.60, Size: 100},
		{Price: 0.40, Size: 100},
	}
	price, ok := ClusterPrice(entries)
	require.True(t, ok)
	assert.Equal(t, 0.40, price)
}

func TestClusterPrice_NeedsTwoEntries(t *testing.T) {
	_, ok := ClusterPrice(nil)
	assert.False(t, ok)

	_, ok = ClusterPrice([]BookEntry{{Price: 0.5, Size: 100}})
	assert.False(t, ok)
}

func TestClusterPrice_Idempotent(t *testing.T) {
	entries := []BookEntry{
		{Price: 0.55, Size: 30},
		{Price: 0.60, Size: 200},
		{Price: 0.55, Size: 40},
	}
	p1, ok1 := ClusterPrice(entries)
	p2, ok2 := ClusterPrice(entries)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, p1, p2)
}
