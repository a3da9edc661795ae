package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholders used when a period does not carry a usable year.
const (
	UnknownYear   = "Unknown Year" // display placeholder
	UnknownBucket = "Unknown"      // aggregation bucket
)

// FinancialPeriod is one annual income statement.
type FinancialPeriod struct {
	Symbol       string              `json:"symbol"`
	Date         string              `json:"date"`          // ISO date, e.g., "2024-09-28"
	CalendarYear string              `json:"calendar_year"` // e.g., "2024"
	Revenue      decimal.NullDecimal `json:"revenue"`
	NetIncome    decimal.NullDecimal `json:"net_income"`
	EPS          Figure              `json:"eps"`
}

// DisplayYear is the calendar year, the statement date, or UnknownYear.
func (p FinancialPeriod) DisplayYear() string {
	if y := strings.TrimSpace(p.CalendarYear); y != "" {
		return y
	}
	if d := strings.TrimSpace(p.Date); d != "" {
		return d
	}
	return UnknownYear
}

// BucketYear is the first segment of the statement date, or UnknownBucket.
func (p FinancialPeriod) BucketYear() string {
	d := strings.TrimSpace(p.Date)
	if d == "" {
		return UnknownBucket
	}
	y, _, _ := strings.Cut(d, "-")
	if y == "" {
		return UnknownBucket
	}
	return y
}

// RevenueOrZero returns revenue, treating an absent value as zero.
func (p FinancialPeriod) RevenueOrZero() decimal.Decimal {
	if !p.Revenue.Valid {
		return decimal.Zero
	}
	return p.Revenue.Decimal
}

// NetIncomeOrZero returns net income, treating an absent value as zero.
func (p FinancialPeriod) NetIncomeOrZero() decimal.Decimal {
	if !p.NetIncome.Valid {
		return decimal.Zero
	}
	return p.NetIncome.Decimal
}

// Figure is an upstream value that arrives as either a JSON number or a
// JSON string and is displayed verbatim.
type Figure struct {
	Text  string
	Valid bool
}

// NewFigure returns a valid figure holding text.
func NewFigure(text string) Figure {
	return Figure{Text: text, Valid: true}
}

// UnmarshalJSON keeps numbers in their literal form and unquotes strings.
// null leaves the figure invalid.
func (f *Figure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Figure{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = NewFigure(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = NewFigure(n.String())
	return nil
}

// MarshalJSON writes the figure as a string, or null when invalid.
func (f Figure) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Text)
}
