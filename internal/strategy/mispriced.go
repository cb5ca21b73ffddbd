package strategy

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/updown/internal/domain"
)

// mispricedAbsGap guards against flagging trivial deviations when the
// cluster price itself is low: a 0.04 ask under a 0.08 cluster passes
// the ratio check but is not a meaningful absolute discount.
const mispricedAbsGap = 0.10

// DetectMispriced scans each side's asks independently for resting
// orders far below the cluster price (the level carrying the most size).
// One opportunity per flagged entry, cheapest first. Estimated profit
// per share assumes an optimistic instant resale at the cluster price.
func DetectMispriced(m domain.Market, yesBook, noBook domain.OrderBook, timeLeft float64, now time.Time, p Params) []domain.Opportunity {
	var opps []domain.Opportunity
	for _, side := range []struct {
		label domain.Side
		book  domain.OrderBook
	}{
		{domain.SideYes, yesBook},
		{domain.SideNo, noBook},
	} {
		for _, hit := range findMispriced(side.book.Asks, p) {
			opps = append(opps, domain.Opportunity{
				ID:                uuid.New().String(),
				Kind:              domain.KindMispriced,
				Symbol:            m.Name(),
				Question:          m.Question,
				DetectedAt:        now,
				TimeLeft:          timeLeft,
				Side:              side.label,
				Price:             hit.Price,
				Size:              hit.Size,
				ClusterPrice:      hit.Cluster,
				DiscountPct:       hit.DiscountPct,
				EstProfitPerShare: hit.Cluster - hit.Price,
			})
		}
	}
	return opps
}

type mispricedEntry struct {
	Price       float64
	Size        float64
	Cluster     float64
	DiscountPct float64
}

// findMispriced flags ask entries priced at or below ratio*cluster AND
// more than the absolute gap below the cluster, with enough resting size
// to matter. Results are sorted ascending by price.
func findMispriced(asks []domain.BookEntry, p Params) []mispricedEntry {
	cluster, ok := domain.ClusterPrice(asks)
	if !ok {
		return nil
	}

	var hits []mispricedEntry
	for _, a := range asks {
		if a.Size < p.MispricedMinSize {
			continue
		}
		if a.Price > cluster*p.MispricedRatio || a.Price >= cluster-mispricedAbsGap {
			continue
		}
		hits = append(hits, mispricedEntry{
			Price:       a.Price,
			Size:        a.Size,
			Cluster:     cluster,
			DiscountPct: (cluster - a.Price) / cluster * 100,
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Price < hits[j].Price })
	return hits
}
