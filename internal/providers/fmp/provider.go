// Package fmp implements the Financial Modeling Prep (FMP) data provider.
// FMP offers financial data via a REST API with API key authentication.
// This client covers the stock screener and annual income statements.
//
// Free tier: 250 requests/day.
// Docs: https://financialmodelingprep.com/developer/docs
package fmp

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/phuslu/log"

	"github.com/seenimoa/financemcp/internal/gateway"
	"github.com/seenimoa/financemcp/pkg/models"
)

const (
	providerName = "fmp"
	// BaseURL is the FMP v3 REST root.
	BaseURL = "https://financialmodelingprep.com/api/v3"
	// APIKeyParam is the query parameter FMP reads the key from.
	APIKeyParam = "apikey"
)

// Options configures a Client.
type Options struct {
	BaseURL string // defaults to BaseURL
	APIKey  string
	Timeout time.Duration
	Logger  *log.Logger
}

// Client reads screener listings and income statements from FMP.
type Client struct {
	gw *gateway.Gateway
}

// New creates a new FMP client backed by its own gateway.
func New(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = BaseURL
	}
	return &Client{
		gw: gateway.New(gateway.Options{
			Name:        providerName,
			BaseURL:     base,
			APIKeyParam: APIKeyParam,
			APIKey:      opts.APIKey,
			Timeout:     opts.Timeout,
			Logger:      opts.Logger,
		}),
	}
}

// Screener lists up to limit companies in sector.
func (c *Client) Screener(ctx context.Context, sector string, limit int) gateway.Result[[]models.Company] {
	res := gateway.Fetch[[]fmpScreenerResult](ctx, c.gw, gateway.Request{
		Path: "/stock-screener",
		Query: url.Values{
			"sector": {sector},
			"limit":  {strconv.Itoa(limit)},
		},
	})
	return gateway.Map(res, func(results []fmpScreenerResult) []models.Company {
		out := make([]models.Company, 0, len(results))
		for _, r := range results {
			out = append(out, r.toCompany())
		}
		return out
	})
}

// IncomeStatements returns up to limit annual income statements for symbol,
// most recent first as FMP orders them.
func (c *Client) IncomeStatements(ctx context.Context, symbol string, limit int) gateway.Result[[]models.FinancialPeriod] {
	res := gateway.Fetch[[]fmpIncomeStatement](ctx, c.gw, gateway.Request{
		Path:       "/income-statement/{symbol}",
		PathParams: map[string]string{"symbol": models.NormalizeSymbol(symbol)},
		Query:      url.Values{"limit": {strconv.Itoa(limit)}},
	})
	return gateway.Map(res, func(results []fmpIncomeStatement) []models.FinancialPeriod {
		out := make([]models.FinancialPeriod, 0, len(results))
		for _, r := range results {
			out = append(out, r.toPeriod())
		}
		return out
	})
}
