package domain

// OrderBook is one token's resting orders. Fully replaced (never merged)
// on every refresh cycle. Prices of outcome tokens live in (0, 1).
type OrderBook struct {
	TokenID string
	Bids    []BookEntry // sorted high to low
	Asks    []BookEntry // sorted low to high
}

// BookEntry is one price level.
type BookEntry struct {
	Price float64
	Size  float64
}

// BestAsk returns the cheapest ask, or 0 if the book has none.
// Scans all entries rather than trusting sort order — some feeds return
// asks unsorted.
func (ob OrderBook) BestAsk() float64 {
	best := 0.0
	for _, a := range ob.Asks {
		if best == 0 || a.Price < best {
			best = a.Price
		}
	}
	return best
}

// BestBid returns the highest bid, or 0 if the book has none.
func (ob OrderBook) BestBid() float64 {
	best := 0.0
	for _, b := range ob.Bids {
		if b.Price > best {
			best = b.Price
		}
	}
	return best
}

// Empty reports whether the book carries no orders at all.
func (ob OrderBook) Empty() bool {
	return len(ob.Bids) == 0 && len(ob.Asks) == 0
}

// Midpoint returns the mid between best bid and best ask, 0 if either
// side is missing.
func (ob OrderBook) Midpoint() float64 {
	bid := ob.BestBid()
	ask := ob.BestAsk()
	if bid == 0 || ask == 0 {
		return 0
	}
	return (bid + ask) / 2
}

// ClusterPrice groups entries by exact price, sums size per level, and
// returns the level carrying the greatest total size. Ties break toward
// the lowest price so the result is deterministic. Needs at least two
// entries — a single price has no outlier concept — otherwise ok=false.
func ClusterPrice(entries []BookEntry) (price float64, ok bool) {
	if len(entries) < 2 {
		return 0, false
	}

	sizeAt := make(map[float64]float64, len(entries))
	for _, e := range entries {
		sizeAt[e.Price] += e.Size
	}

	var bestSize float64
	for p, s := range sizeAt {
		if s > bestSize || (s == bestSize && (price == 0 || p < price)) {
			bestSize = s
			price = p
		}
	}
	return price, true
}
