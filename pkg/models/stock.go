// Package models defines the request-scoped records exchanged between the
// upstream providers, the formatters and the sector aggregator.
package models

import "github.com/shopspring/decimal"

// Company is one entry of a sector screener listing.
type Company struct {
	Symbol      string              `json:"symbol"`       // e.g., "AAPL"
	CompanyName string              `json:"company_name"` // e.g., "Apple Inc."
	Industry    string              `json:"industry"`     // e.g., "Consumer Electronics"
	Sector      string              `json:"sector,omitempty"`
	Exchange    string              `json:"exchange,omitempty"` // short name, e.g., "NASDAQ"
	MarketCap   decimal.NullDecimal `json:"market_cap"`
}

// Symbols returns the upper-cased, non-blank, de-duplicated symbols of the
// given companies in their original order.
func Symbols(companies []Company) []string {
	seen := make(map[string]bool, len(companies))
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		s := NormalizeSymbol(c.Symbol)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
