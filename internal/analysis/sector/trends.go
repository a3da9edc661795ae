// Package sector computes financial trends across the companies of a
// market sector: it fans out income-statement fetches, groups the periods
// by year, averages them and derives year-over-year growth.
package sector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/financemcp/internal/gateway"
	"github.com/seenimoa/financemcp/pkg/models"
	"github.com/seenimoa/financemcp/pkg/utils"
)

const (
	// DefaultCompanyLimit is the cohort size when the caller gives none.
	DefaultCompanyLimit = 5
	// PeriodsPerCompany is how many recent annual statements are requested.
	PeriodsPerCompany = 4
	// DefaultConcurrency caps in-flight statement fetches.
	DefaultConcurrency = 5
)

// Source is the upstream the analyzer reads from.
type Source interface {
	Screener(ctx context.Context, sector string, limit int) gateway.Result[[]models.Company]
	IncomeStatements(ctx context.Context, symbol string, limit int) gateway.Result[[]models.FinancialPeriod]
}

// Status tells how far an analysis got.
type Status int

const (
	StatusOK                   Status = iota // averages computed
	StatusCompaniesUnavailable               // screener call failed
	StatusNoCompanies                        // screener returned no symbols
	StatusNoData                             // no statement could be accumulated
)

// Summary is the full result of one sector analysis.
type Summary struct {
	Sector  string            `json:"sector"`
	Status  Status            `json:"status"`
	Symbols []string          `json:"symbols"`           // cohort, screener order
	Skipped []string          `json:"skipped,omitempty"` // symbols whose fetch was unavailable
	Years   []YearlyAggregate `json:"years,omitempty"`
	Growth  []GrowthDelta     `json:"growth,omitempty"`
}

// Analyzer runs sector trend analyses against a Source.
type Analyzer struct {
	src         Source
	concurrency int
	logger      *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConcurrency caps the number of statement fetches in flight.
// n <= 0 keeps DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithLogger sets the analyzer logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates an analyzer reading from src.
func NewAnalyzer(src Source, opts ...Option) *Analyzer {
	a := &Analyzer{
		src:         src,
		concurrency: DefaultConcurrency,
		logger:      &log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Trends analyzes sector and renders the summary text.
func (a *Analyzer) Trends(ctx context.Context, sector string, companyLimit int) string {
	return a.Analyze(ctx, sector, companyLimit).Render()
}

// Analyze fetches up to companyLimit companies of sector and aggregates
// their recent annual statements. Symbols whose fetch is unavailable are
// skipped. companyLimit < 1 is treated as DefaultCompanyLimit.
func (a *Analyzer) Analyze(ctx context.Context, sector string, companyLimit int) Summary {
	if companyLimit < 1 {
		companyLimit = DefaultCompanyLimit
	}
	start := time.Now()
	sum := Summary{Sector: sector}

	companies, ok := a.src.Screener(ctx, sector, companyLimit).Get()
	if !ok {
		sum.Status = StatusCompaniesUnavailable
		return sum
	}

	symbols := models.Symbols(companies)
	if len(symbols) > companyLimit {
		symbols = symbols[:companyLimit]
	}
	sum.Symbols = symbols
	if len(symbols) == 0 {
		sum.Status = StatusNoCompanies
		return sum
	}

	acc := newAccumulator()
	for _, o := range a.gather(ctx, symbols) {
		periods, ok := o.result.Get()
		if !ok {
			a.logger.Debug().Str("sector", sector).Str("symbol", o.symbol).Msg("skipping symbol without statements")
			sum.Skipped = append(sum.Skipped, o.symbol)
			continue
		}
		for _, p := range periods {
			acc.add(p)
		}
	}

	if acc.empty() {
		sum.Status = StatusNoData
		return sum
	}

	sum.Status = StatusOK
	sum.Years = acc.aggregates()
	sum.Growth = Growth(sum.Years)

	a.logger.Info().
		Str("sector", sector).
		Int("companies", len(symbols)).
		Int("skipped", len(sum.Skipped)).
		Int("years", len(sum.Years)).
		Dur("took", time.Since(start)).
		Msg("sector trends computed")
	return sum
}

// outcome pairs a symbol with its statement fetch result.
type outcome struct {
	symbol string
	result gateway.Result[[]models.FinancialPeriod]
}

// gather fetches statements for every symbol with bounded concurrency and
// returns the outcomes in symbol order.
func (a *Analyzer) gather(ctx context.Context, symbols []string) []outcome {
	out := make([]outcome, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(len(symbols), a.concurrency))
	for i, s := range symbols {
		g.Go(func() error {
			out[i] = outcome{symbol: s, result: a.src.IncomeStatements(gctx, s, PeriodsPerCompany)}
			return nil // unavailable symbols are filtered by the caller
		})
	}
	_ = g.Wait()

	return out
}

// Render produces the text returned to tool callers.
func (s Summary) Render() string {
	switch s.Status {
	case StatusCompaniesUnavailable:
		return fmt.Sprintf("Unable to fetch companies for sector '%s'.", s.Sector)
	case StatusNoCompanies:
		return fmt.Sprintf("No companies found in sector '%s'.", s.Sector)
	case StatusNoData:
		return fmt.Sprintf("No financial data available for companies in '%s'.", s.Sector)
	}

	lines := []string{"Sector Financial Trends:"}
	for _, y := range s.Years {
		lines = append(lines, fmt.Sprintf("%s: Avg Revenue = %s, Avg Net Income = %s",
			y.Year, utils.FormatUSDFixed(y.AvgRevenue, 2), utils.FormatUSDFixed(y.AvgNetIncome, 2)))
	}

	lines = append(lines, "\nRevenue Growth:")
	for _, d := range s.Growth {
		lines = append(lines, fmt.Sprintf("%s→%s Rev Δ: %s", d.FromYear, d.ToYear, utils.FormatPct(d.RevenuePct)))
	}
	lines = append(lines, "\nNet Income Growth:")
	for _, d := range s.Growth {
		lines = append(lines, fmt.Sprintf("%s→%s Net Δ: %s", d.FromYear, d.ToYear, utils.FormatPct(d.NetIncomePct)))
	}

	return strings.Join(lines, "\n")
}
