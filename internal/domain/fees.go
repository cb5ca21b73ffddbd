package domain

// FeeParams approximates the all-in cost of trading outcome tokens on a
// CLOB: the per-leg exchange fee, the flat gas cost of the on-chain
// merge, the USDC swap spread, and a safety buffer. It is a configurable
// approximation, not any exchange's actual fee schedule.
type FeeParams struct {
	ClobFeeRate    float64 // per leg, e.g. 0.00075
	GasMergeUSD    float64 // flat, charged once per merge
	SwapSpreadRate float64 // per leg
	BufferBPS      float64 // safety buffer in basis points
}

// TotalFeeFraction returns the fee fraction for a full two-sided trade
// (buying YES and NO, then merging). The x2 terms model paying the fee
// and spread on both legs. The gas term is 0 when tradeSizeUSD <= 0 —
// a safe fallback instead of dividing by zero.
//
// Call this once per edge computation so displayed and executed edges
// cannot drift apart.
func (f FeeParams) TotalFeeFraction(tradeSizeUSD float64) float64 {
	gas := 0.0
	if tradeSizeUSD > 0 {
		gas = f.GasMergeUSD / tradeSizeUSD
	}
	return 2*f.ClobFeeRate + gas + 2*f.SwapSpreadRate + f.BufferBPS/10000
}

// SingleLegFeeFraction is the one-sided variant used by the snipe and
// mispriced strategies: one CLOB fee, one swap spread, same buffer.
func (f FeeParams) SingleLegFeeFraction(tradeSizeUSD float64) float64 {
	gas := 0.0
	if tradeSizeUSD > 0 {
		gas = f.GasMergeUSD / tradeSizeUSD
	}
	return f.ClobFeeRate + gas + f.SwapSpreadRate + f.BufferBPS/10000
}
