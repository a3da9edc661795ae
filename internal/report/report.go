// Package report renders normalized records into the fixed-layout text
// blocks returned by the finance tools. Every renderer is total: missing
// fields degrade to placeholders, never to an error.
package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/financemcp/pkg/models"
	"github.com/seenimoa/financemcp/pkg/utils"
)

// Separator joins consecutive blocks.
const Separator = "\n---\n"

// Placeholders for missing fields.
const (
	Unknown       = "Unknown"
	NotAvailable  = "N/A"
	UnknownSource = "Unknown Source"
	NoTitle       = "No title"
	UnknownDate   = "Unknown date"
	NoDescription = "No description available"
)

// ════════════════════════════════════════════════════════════════════
// Record blocks
// ════════════════════════════════════════════════════════════════════

// Company renders one screener entry.
func Company(c models.Company) string {
	var b strings.Builder
	b.WriteString("\nTicker: ")
	b.WriteString(orDefault(c.Symbol, Unknown))
	b.WriteString("\nName:   ")
	b.WriteString(orDefault(c.CompanyName, Unknown))
	b.WriteString("\nIndustry: ")
	b.WriteString(orDefault(c.Industry, Unknown))
	b.WriteString("\n")
	return b.String()
}

// Financial renders one income-statement period.
func Financial(p models.FinancialPeriod) string {
	eps := NotAvailable
	if p.EPS.Valid {
		eps = p.EPS.Text
	}

	var b strings.Builder
	b.WriteString("\nYear: ")
	b.WriteString(p.DisplayYear())
	b.WriteString("\n  • Revenue: ")
	b.WriteString(amount(p.Revenue))
	b.WriteString("\n  • Net Income: ")
	b.WriteString(amount(p.NetIncome))
	b.WriteString("\n  • EPS: ")
	b.WriteString(eps)
	b.WriteString("\n")
	return b.String()
}

// Article renders one news article.
func Article(a models.NewsArticle) string {
	var b strings.Builder
	b.WriteString("\nSource: ")
	b.WriteString(orDefault(a.SourceName, UnknownSource))
	b.WriteString("\nDate:   ")
	b.WriteString(orDefault(a.PublishedDate(), UnknownDate))
	b.WriteString("\nTitle:  ")
	b.WriteString(orDefault(a.Title, NoTitle))
	b.WriteString("\nSummary:")
	b.WriteString(orDefault(a.Description, NoDescription))
	b.WriteString("\nLink:   ")
	b.WriteString(a.URL)
	b.WriteString("\n")
	return b.String()
}

// ════════════════════════════════════════════════════════════════════
// Joining
// ════════════════════════════════════════════════════════════════════

// Join renders at most limit items with render and joins them with
// Separator. A limit <= 0 renders every item.
func Join[T any](items []T, limit int, render func(T) string) string {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	blocks := make([]string, 0, len(items))
	for _, it := range items {
		blocks = append(blocks, render(it))
	}
	return strings.Join(blocks, Separator)
}

// ════════════════════════════════════════════════════════════════════
// Helpers
// ════════════════════════════════════════════════════════════════════

func amount(v decimal.NullDecimal) string {
	if !v.Valid {
		return NotAvailable
	}
	return utils.FormatUSD(v.Decimal)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
