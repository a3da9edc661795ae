package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/seenimoa/financemcp/internal/analysis/sector"
)

// Tool names as exposed to callers.
const (
	ToolCompaniesInSector     = "get_companies_in_sector"
	ToolCompanyFinancials     = "get_company_financials"
	ToolCompanyNews           = "get_company_news"
	ToolSectorFinancialTrends = "get_sector_financial_trends"
)

type sectorArgs struct {
	Sector string `json:"sector"`
}

type tickerArgs struct {
	Ticker string `json:"ticker"`
}

type companyArgs struct {
	Company string `json:"company"`
}

type trendsArgs struct {
	Sector       string `json:"sector"`
	CompanyLimit *int   `json:"company_limit,omitempty"`
}

// NewCatalog returns a registry holding the four finance tools backed by svc.
func NewCatalog(svc *Service) *Registry {
	r := NewRegistry(svc.logger)

	r.Register(Tool{
		Name:        ToolCompaniesInSector,
		Description: "Get a list of major publicly traded companies in a given sector.",
		Parameters: ObjectSchema("", map[string]*JSONSchema{
			"sector": StringProp("Name of the sector (e.g., 'Cosmetics', 'Technology')"),
		}, "sector"),
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var args sectorArgs
			if err := decodeArgs(raw, &args); err != nil {
				return "", err
			}
			return svc.ListCompaniesInSector(ctx, args.Sector), nil
		},
	})

	r.Register(Tool{
		Name:        ToolCompanyFinancials,
		Description: "Get the last 4 years of income-statement data for a given company.",
		Parameters: ObjectSchema("", map[string]*JSONSchema{
			"ticker": StringProp("Stock ticker symbol (e.g. \"AAPL\", \"EL\")"),
		}, "ticker"),
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var args tickerArgs
			if err := decodeArgs(raw, &args); err != nil {
				return "", err
			}
			return svc.GetCompanyFinancials(ctx, args.Ticker), nil
		},
	})

	r.Register(Tool{
		Name:        ToolCompanyNews,
		Description: "Get recent news articles for a given company.",
		Parameters: ObjectSchema("", map[string]*JSONSchema{
			"company": StringProp("Company name or ticker (e.g., \"Apple\", \"AAPL\")"),
		}, "company"),
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var args companyArgs
			if err := decodeArgs(raw, &args); err != nil {
				return "", err
			}
			return svc.GetCompanyNews(ctx, args.Company), nil
		},
	})

	r.Register(Tool{
		Name:        ToolSectorFinancialTrends,
		Description: "Get aggregated financial trends for the top N companies in a given sector.",
		Parameters: ObjectSchema("", map[string]*JSONSchema{
			"sector":        StringProp("Name of the sector (e.g. \"Cosmetics\")"),
			"company_limit": IntProp("Number of companies to include (default: 5)", 1, sector.DefaultCompanyLimit),
		}, "sector"),
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var args trendsArgs
			if err := decodeArgs(raw, &args); err != nil {
				return "", err
			}
			limit := sector.DefaultCompanyLimit
			if args.CompanyLimit != nil {
				limit = *args.CompanyLimit
			}
			return svc.GetSectorFinancialTrends(ctx, args.Sector, limit), nil
		},
	})

	return r
}

// decodeArgs unmarshals tool arguments; empty input means no arguments.
func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("tools: invalid arguments: %w", err)
	}
	return nil
}
