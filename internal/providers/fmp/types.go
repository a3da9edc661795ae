package fmp

import (
	"github.com/shopspring/decimal"

	"github.com/seenimoa/financemcp/pkg/models"
)

// --- FMP API response types ---

// fmpScreenerResult represents a screener result from FMP.
type fmpScreenerResult struct {
	Symbol            string              `json:"symbol"`
	CompanyName       string              `json:"companyName"`
	MarketCap         decimal.NullDecimal `json:"marketCap"`
	Sector            string              `json:"sector"`
	Industry          string              `json:"industry"`
	ExchangeShortName string              `json:"exchangeShortName"`
}

// fmpIncomeStatement represents an income statement from FMP.
// Only the fields the reports use are decoded.
type fmpIncomeStatement struct {
	Date         string              `json:"date"`
	Symbol       string              `json:"symbol"`
	CalendarYear models.Figure       `json:"calendarYear"` // string in v3, number in some responses
	Period       string              `json:"period"`       // "FY" or "Q1", "Q2", etc.
	Revenue      decimal.NullDecimal `json:"revenue"`
	NetIncome    decimal.NullDecimal `json:"netIncome"`
	EPS          models.Figure       `json:"eps"`
}

func (r fmpScreenerResult) toCompany() models.Company {
	return models.Company{
		Symbol:      r.Symbol,
		CompanyName: r.CompanyName,
		Industry:    r.Industry,
		Sector:      r.Sector,
		Exchange:    r.ExchangeShortName,
		MarketCap:   r.MarketCap,
	}
}

func (r fmpIncomeStatement) toPeriod() models.FinancialPeriod {
	return models.FinancialPeriod{
		Symbol:       r.Symbol,
		Date:         r.Date,
		CalendarYear: r.CalendarYear.Text,
		Revenue:      r.Revenue,
		NetIncome:    r.NetIncome,
		EPS:          r.EPS,
	}
}
