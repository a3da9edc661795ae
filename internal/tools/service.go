// Package tools implements the four finance lookups exposed to tool
// callers and a registry describing them. Every operation returns one
// plain-text string; upstream failures become descriptive text.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"github.com/seenimoa/financemcp/internal/analysis/sector"
	"github.com/seenimoa/financemcp/internal/gateway"
	"github.com/seenimoa/financemcp/internal/providers/newsapi"
	"github.com/seenimoa/financemcp/internal/report"
	"github.com/seenimoa/financemcp/pkg/models"
)

// Per-call upstream limits.
const (
	SectorCompanyLimit = 10
	FinancialsLimit    = sector.PeriodsPerCompany
	NewsPageSize       = 5
)

// CompanySource is the company and statement upstream (FMP).
type CompanySource = sector.Source

// NewsSource is the news upstream (NewsAPI).
type NewsSource interface {
	Everything(ctx context.Context, query string, pageSize int) gateway.Result[newsapi.Search]
}

// Service runs the finance lookups.
type Service struct {
	companies CompanySource
	news      NewsSource
	trends    *sector.Analyzer
	logger    *log.Logger
}

// NewService wires a service. A nil logger uses log.DefaultLogger.
func NewService(companies CompanySource, news NewsSource, trends *sector.Analyzer, logger *log.Logger) *Service {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	if trends == nil {
		trends = sector.NewAnalyzer(companies, sector.WithLogger(logger))
	}
	return &Service{companies: companies, news: news, trends: trends, logger: logger}
}

// ListCompaniesInSector lists up to SectorCompanyLimit companies of a sector.
func (s *Service) ListCompaniesInSector(ctx context.Context, sectorName string) string {
	sectorName = strings.TrimSpace(sectorName)
	if sectorName == "" {
		return missing("sector")
	}

	companies, ok := s.companies.Screener(ctx, sectorName, SectorCompanyLimit).Get()
	if !ok || len(companies) == 0 {
		return fmt.Sprintf("Unable to fetch companies for sector '%s', or no companies found.", sectorName)
	}
	return report.Join(companies, SectorCompanyLimit, report.Company)
}

// GetCompanyFinancials renders the most recent annual income statements
// of a ticker.
func (s *Service) GetCompanyFinancials(ctx context.Context, ticker string) string {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return missing("ticker")
	}

	periods, ok := s.companies.IncomeStatements(ctx, models.NormalizeSymbol(ticker), FinancialsLimit).Get()
	if !ok || len(periods) == 0 {
		return fmt.Sprintf("Unable to fetch financials for '%s', or no data found.", ticker)
	}
	return report.Join(periods, FinancialsLimit, report.Financial)
}

// GetCompanyNews renders the most recent articles mentioning company.
func (s *Service) GetCompanyNews(ctx context.Context, company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return missing("company")
	}

	res, ok := s.news.Everything(ctx, company, NewsPageSize).Get()
	if !ok || !res.Found {
		return fmt.Sprintf("Unable to fetch news for '%s', or no articles found.", company)
	}
	if len(res.Articles) == 0 {
		return fmt.Sprintf("No recent news articles found for '%s'.", company)
	}
	return report.Join(res.Articles, NewsPageSize, report.Article)
}

// GetSectorFinancialTrends summarizes yearly averages and growth across
// up to companyLimit companies of a sector.
func (s *Service) GetSectorFinancialTrends(ctx context.Context, sectorName string, companyLimit int) string {
	sectorName = strings.TrimSpace(sectorName)
	if sectorName == "" {
		return missing("sector")
	}
	if companyLimit < 1 {
		return "company_limit must be at least 1."
	}
	return s.trends.Trends(ctx, sectorName, companyLimit)
}

// SectorSummary is GetSectorFinancialTrends without rendering.
func (s *Service) SectorSummary(ctx context.Context, sectorName string, companyLimit int) sector.Summary {
	return s.trends.Analyze(ctx, strings.TrimSpace(sectorName), companyLimit)
}

func missing(field string) string {
	return fmt.Sprintf("Please provide a %s.", field)
}
