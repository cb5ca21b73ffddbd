package polymarket

import "encoding/json"

// Raw Gamma/CLOB DTOs. Conversion to domain entities lives in mapping.go.

// gammaMarket is one market from Gamma GET /markets. Several list-valued
// fields arrive as JSON-encoded strings inside the JSON, hence the
// flexible types.
type gammaMarket struct {
	ConditionID   string      `json:"conditionId"`
	ID            string      `json:"id"`
	Question      string      `json:"question"`
	Slug          string      `json:"slug"`
	EndDate       string      `json:"endDate"`
	Outcomes      stringList  `json:"outcomes"`
	ClobTokenIDs  stringList  `json:"clobTokenIds"`
	OutcomePrices stringList  `json:"outcomePrices"`
	Volume        json.Number `json:"volume"`
	Active        bool        `json:"active"`
	Closed        bool        `json:"closed"`
}

// stringList decodes either a JSON array of strings or a JSON string
// containing an encoded array — Gamma uses both representations.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	if encoded == "" {
		*l = nil
		return nil
	}

	var nested []string
	if err := json.Unmarshal([]byte(encoded), &nested); err != nil {
		return err
	}
	*l = nested
	return nil
}

// bookResponse is CLOB GET /book. Some deployments call asks "sells".
type bookResponse struct {
	AssetID string         `json:"asset_id"`
	Bids    []bookEntryRaw `json:"bids"`
	Asks    []bookEntryRaw `json:"asks"`
	Sells   []bookEntryRaw `json:"sells"`
}

// bookEntryRaw is one raw price level (strings for precision).
type bookEntryRaw struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}
