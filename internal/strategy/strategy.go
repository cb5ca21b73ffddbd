package strategy

import "github.com/alejandrodnm/updown/internal/domain"

// Params are the detection thresholds shared by the three detectors.
// All detectors are pure functions of (books, timing, Params) — nothing
// here is mutated during a scan pass, so evaluation order across
// strategies is irrelevant.
type Params struct {
	Fees domain.FeeParams

	ArbThresholdBPS  float64 // min net edge for arbitrage, basis points
	SnipeThreshold   float64 // min per-share edge for the snipe
	SnipeWindowSecs  float64 // seconds before close that activate the snipe
	MispricedRatio   float64 // flag asks <= ratio * cluster price
	MispricedMinSize float64 // min resting size to bother flagging

	MinTradeUSD float64
	MaxTradeUSD float64
}

// DefaultParams mirrors the tuning the scanner ships with.
func DefaultParams() Params {
	return Params{
		Fees: domain.FeeParams{
			ClobFeeRate:    0.00075,
			GasMergeUSD:    0.50,
			SwapSpreadRate: 0.0002,
			BufferBPS:      10,
		},
		ArbThresholdBPS:  20,
		SnipeThreshold:   0.05,
		SnipeWindowSecs:  15,
		MispricedRatio:   0.50,
		MispricedMinSize: 10,
		MinTradeUSD:      50,
		MaxTradeUSD:      2000,
	}
}

// RepresentativeTradeSize is the size used to estimate fees at detection
// time: the midpoint of the configured bounds. The simulator later draws
// its own size, so the realized gas fraction can differ slightly — that
// two-stage estimate-then-simulate split is deliberate, and collapsing
// it would change which opportunities cross the threshold.
func (p Params) RepresentativeTradeSize() float64 {
	return (p.MinTradeUSD + p.MaxTradeUSD) / 2
}
