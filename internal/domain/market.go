package domain

import "time"

// Market is the metadata snapshot of one binary market: either a 5-minute
// crypto up/down instance tied to a period, or a general binary market
// pulled in by discovery. Owned by the rotation controller; refreshed in
// place once per rotation (or on demand) and never shared across periods.
type Market struct {
	ConditionID string
	Slug        string
	Symbol      string // "BTC", "ETH"... empty for discovered markets
	Question    string
	YesTokenID  string
	NoTokenID   string
	YesPrice    float64
	NoPrice     float64
	Volume      float64
	EndDate     time.Time
	PeriodStart int64 // 0 for general markets
	Active      bool
	Closed      bool
}

// Tradeable reports whether the market should be scanned this cycle.
// A closed or missing snapshot yields no opportunities.
func (m Market) Tradeable() bool {
	return m.Active && !m.Closed && m.YesTokenID != "" && m.NoTokenID != ""
}

// Name returns the display label for logs and tables: the symbol for
// period markets, the (possibly truncated) question otherwise.
func (m Market) Name() string {
	if m.Symbol != "" {
		return m.Symbol
	}
	return TruncateStr(m.Question, 40)
}

// TruncateStr shortens s to maxLen runes, appending "..." when cut.
func TruncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
