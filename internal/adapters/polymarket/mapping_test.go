package polymarket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_DirectArray(t *testing.T) {
	var l stringList
	err := json.Unmarshal([]byte(`["Yes","No"]`), &l)
	require.NoError(t, err)
	assert.Equal(t, stringList{"Yes", "No"}, l)
}

func TestStringList_EncodedArray(t *testing.T) {
	var l stringList
	err := json.Unmarshal([]byte(`"[\"Yes\",\"No\"]"`), &l)
	require.NoError(t, err)
	assert.Equal(t, stringList{"Yes", "No"}, l)
}

func TestStringList_EmptyString(t *testing.T) {
	var l stringList
	err := json.Unmarshal([]byte(`""`), &l)
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestMapGammaMarket(t *testing.T) {
	gm := gammaMarket{
		ConditionID:   "0xabc",
		Question:      "BTC up or down?",
		Slug:          "btc-updown-5m-1000",
		EndDate:       "2026-08-28T12:05:00Z",
		Outcomes:      stringList{"Up", "Down"},
		ClobTokenIDs:  stringList{"tok-yes", "tok-no"},
		OutcomePrices: stringList{"0.52", "0.48"},
		Volume:        json.Number("12345.6"),
		Active:        true,
	}

	m, ok := mapGammaMarket(gm)
	require.True(t, ok)
	assert.Equal(t, "0xabc", m.ConditionID)
	assert.Equal(t, "tok-yes", m.YesTokenID)
	assert.Equal(t, "tok-no", m.NoTokenID)
	assert.Equal(t, 0.52, m.YesPrice)
	assert.Equal(t, 0.48, m.NoPrice)
	assert.InDelta(t, 12345.6, m.Volume, 1e-9)
	assert.Equal(t, 2026, m.EndDate.Year())
	assert.True(t, m.Tradeable())
}

func TestMapGammaMarket_RejectsNonBinary(t *testing.T) {
	gm := gammaMarket{
		ConditionID:  "0xmulti",
		Outcomes:     stringList{"A", "B", "C"},
		ClobTokenIDs: stringList{"1", "2", "3"},
	}
	_, ok := mapGammaMarket(gm)
	assert.False(t, ok)

	gm.Outcomes = stringList{"Yes", "No"}
	gm.ClobTokenIDs = stringList{"only-one"}
	_, ok = mapGammaMarket(gm)
	assert.False(t, ok)
}

func TestMapGammaMarket_MissingPricesDefaultToHalf(t *testing.T) {
	gm := gammaMarket{
		ConditionID:  "0xnop",
		Outcomes:     stringList{"Yes", "No"},
		ClobTokenIDs: stringList{"a", "b"},
	}
	m, ok := mapGammaMarket(gm)
	require.True(t, ok)
	assert.Equal(t, 0.5, m.YesPrice)
	assert.Equal(t, 0.5, m.NoPrice)
}

func TestMapGammaMarket_FallsBackToID(t *testing.T) {
	gm := gammaMarket{
		ID:           "51234",
		Outcomes:     stringList{"Yes", "No"},
		ClobTokenIDs: stringList{"a", "b"},
	}
	m, ok := mapGammaMarket(gm)
	require.True(t, ok)
	assert.Equal(t, "51234", m.ConditionID)
}

func TestMapOrderBook_FiltersAndSorts(t *testing.T) {
	raw := bookResponse{
		Bids: []bookEntryRaw{
			{Price: "0.40", Size: "100"},
			{Price: "0.45", Size: "50"},
			{Price: "0", Size: "10"},     // out of range
			{Price: "0.42", Size: "-5"},  // non-positive size
			{Price: "1.0", Size: "30"},   // out of range
			{Price: "bogus", Size: "10"}, // unparseable -> price 0, dropped
		},
		Asks: []bookEntryRaw{
			{Price: "0.55", Size: "10"},
			{Price: "0.50", Size: "20"},
		},
	}

	book := mapOrderBook("tok", raw)
	assert.Equal(t, "tok", book.TokenID)

	require.Len(t, book.Bids, 2)
	assert.Equal(t, 0.45, book.Bids[0].Price, "bids descending")
	assert.Equal(t, 0.40, book.Bids[1].Price)

	require.Len(t, book.Asks, 2)
	assert.Equal(t, 0.50, book.Asks[0].Price, "asks ascending")
	assert.Equal(t, 0.55, book.Asks[1].Price)
}

func TestMapOrderBook_SellsFallback(t *testing.T) {
	raw := bookResponse{
		Sells: []bookEntryRaw{{Price: "0.60", Size: "40"}},
	}
	book := mapOrderBook("tok", raw)
	require.Len(t, book.Asks, 1)
	assert.Equal(t, 0.60, book.Asks[0].Price)
}

func TestUpdownSlug(t *testing.T) {
	assert.Equal(t, "btc-updown-5m-1700000100", updownSlug("BTC", 1700000100))
	assert.Equal(t, "eth-updown-5m-900", updownSlug("eth", 900))
}
