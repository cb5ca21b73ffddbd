package polymarket

import (
	"sort"
	"strconv"
	"time"

	"github.com/alejandrodnm/updown/internal/domain"
)

// mapGammaMarket converts a Gamma DTO to a domain.Market. ok=false when
// the market is not a clean binary market (wrong outcome or token count)
// — callers treat that as absence of data, never an error.
func mapGammaMarket(gm gammaMarket) (domain.Market, bool) {
	if len(gm.Outcomes) != 2 || len(gm.ClobTokenIDs) != 2 {
		return domain.Market{}, false
	}

	m := domain.Market{
		ConditionID: gm.ConditionID,
		Slug:        gm.Slug,
		Question:    gm.Question,
		YesTokenID:  gm.ClobTokenIDs[0],
		NoTokenID:   gm.ClobTokenIDs[1],
		Active:      gm.Active,
		Closed:      gm.Closed,
	}
	if m.ConditionID == "" {
		m.ConditionID = gm.ID
	}

	if v, err := gm.Volume.Float64(); err == nil {
		m.Volume = v
	}

	m.YesPrice, m.NoPrice = 0.5, 0.5
	if len(gm.OutcomePrices) > 0 {
		if p, err := strconv.ParseFloat(gm.OutcomePrices[0], 64); err == nil {
			m.YesPrice = p
		}
	}
	if len(gm.OutcomePrices) > 1 {
		if p, err := strconv.ParseFloat(gm.OutcomePrices[1], 64); err == nil {
			m.NoPrice = p
		}
	}

	if gm.EndDate != "" {
		// Gamma mixes date formats; try the common ones.
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02T15:04:05.000Z",
			"2006-01-02T15:04:05Z",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, gm.EndDate); err == nil {
				m.EndDate = t.UTC()
				break
			}
		}
	}

	return m, true
}

// mapOrderBook converts a raw book to the domain snapshot, dropping
// entries with prices outside (0, 1) or non-positive size, and sorting
// asks ascending / bids descending.
func mapOrderBook(tokenID string, raw bookResponse) domain.OrderBook {
	asks := raw.Asks
	if len(asks) == 0 {
		asks = raw.Sells
	}
	return domain.OrderBook{
		TokenID: tokenID,
		Bids:    mapBookEntries(raw.Bids, false),
		Asks:    mapBookEntries(asks, true),
	}
}

func mapBookEntries(raw []bookEntryRaw, ascending bool) []domain.BookEntry {
	entries := make([]domain.BookEntry, 0, len(raw))
	for _, r := range raw {
		price, _ := strconv.ParseFloat(r.Price, 64)
		size, _ := strconv.ParseFloat(r.Size, 64)
		if price <= 0 || price >= 1 || size <= 0 {
			continue
		}
		entries = append(entries, domain.BookEntry{Price: price, Size: size})
	}

	sort.Slice(entries, func(i, j int) bool {
		if ascending {
			return entries[i].Price < entries[j].Price
		}
		return entries[i].Price > entries[j].Price
	})

	return entries
}
