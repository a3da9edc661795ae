package sector

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/financemcp/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// YearlyAggregate is the mean revenue and net income of every period that
// fell into Year, across all companies of the cohort.
type YearlyAggregate struct {
	Year         string          `json:"year"`
	AvgRevenue   decimal.Decimal `json:"avg_revenue"`
	AvgNetIncome decimal.Decimal `json:"avg_net_income"`
	Periods      int             `json:"periods"` // number of statements averaged
}

// GrowthDelta is the percent change of the yearly averages between two
// adjacent known years.
type GrowthDelta struct {
	FromYear     string  `json:"from_year"`
	ToYear       string  `json:"to_year"`
	RevenuePct   float64 `json:"revenue_pct"`
	NetIncomePct float64 `json:"net_income_pct"`
}

// accumulator collects per-year revenue and net income lists.
type accumulator struct {
	revenue   map[string][]decimal.Decimal
	netIncome map[string][]decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{
		revenue:   make(map[string][]decimal.Decimal),
		netIncome: make(map[string][]decimal.Decimal),
	}
}

// add files one period under its bucket year; absent values count as zero.
func (acc *accumulator) add(p models.FinancialPeriod) {
	y := p.BucketYear()
	acc.revenue[y] = append(acc.revenue[y], p.RevenueOrZero())
	acc.netIncome[y] = append(acc.netIncome[y], p.NetIncomeOrZero())
}

func (acc *accumulator) empty() bool {
	return len(acc.revenue) == 0
}

// aggregates returns one entry per year: known years in ascending string
// order, then the Unknown bucket if any period lacked a date.
func (acc *accumulator) aggregates() []YearlyAggregate {
	years := make([]string, 0, len(acc.revenue))
	for y := range acc.revenue {
		if y != models.UnknownBucket {
			years = append(years, y)
		}
	}
	sort.Strings(years)
	if _, ok := acc.revenue[models.UnknownBucket]; ok {
		years = append(years, models.UnknownBucket)
	}

	out := make([]YearlyAggregate, 0, len(years))
	for _, y := range years {
		out = append(out, YearlyAggregate{
			Year:         y,
			AvgRevenue:   mean(acc.revenue[y]),
			AvgNetIncome: mean(acc.netIncome[y]),
			Periods:      len(acc.revenue[y]),
		})
	}
	return out
}

// Growth computes deltas between chronologically adjacent years. The
// Unknown bucket takes no part.
func Growth(years []YearlyAggregate) []GrowthDelta {
	known := make([]YearlyAggregate, 0, len(years))
	for _, y := range years {
		if y.Year != models.UnknownBucket {
			known = append(known, y)
		}
	}

	var out []GrowthDelta
	for i := 1; i < len(known); i++ {
		prev, curr := known[i-1], known[i]
		out = append(out, GrowthDelta{
			FromYear:     prev.Year,
			ToYear:       curr.Year,
			RevenuePct:   pctChange(prev.AvgRevenue, curr.AvgRevenue),
			NetIncomePct: pctChange(prev.AvgNetIncome, curr.AvgNetIncome),
		})
	}
	return out
}

// pctChange is (curr-prev)/prev*100, or 0 when prev is zero.
func pctChange(prev, curr decimal.Decimal) float64 {
	if prev.IsZero() {
		return 0
	}
	return curr.Sub(prev).Div(prev).Mul(hundred).InexactFloat64()
}

func mean(vals []decimal.Decimal) decimal.Decimal {
	if len(vals) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(vals[0], vals[1:]...).Div(decimal.NewFromInt(int64(len(vals))))
}
