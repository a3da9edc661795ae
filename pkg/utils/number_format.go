// Package utils provides number formatting helpers shared by the report
// renderers.
package utils

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "$"

// maxAmountPlaces bounds the fraction digits kept by FormatAmount.
const maxAmountPlaces = 8

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	half          = decimal.New(5, -1)
)

// FormatAmount formats a number with thousands separators, keeping the
// precision it was received with (trailing zeros dropped).
// e.g., 394328000000 → "394,328,000,000", 1234.5 → "1,234.5"
func FormatAmount(d decimal.Decimal) string {
	places := 0
	if _, frac, ok := strings.Cut(d.String(), "."); ok {
		places = len(frac)
	}
	if places > maxAmountPlaces {
		places = maxAmountPlaces
	}
	return groupThousands(d.Round(int32(places)), places)
}

// FormatFixed formats a number with thousands separators and exactly
// places fraction digits. Exact ties go the way the nearest float64 lies,
// and half to even when that float is the tie itself.
// e.g., (1234567.891, 2) → "1,234,567.89", (0.125, 2) → "0.12"
func FormatFixed(d decimal.Decimal, places int) string {
	return groupThousands(roundLikeFloat(d, int32(places)), places)
}

// FormatUSD formats an amount the way the reports print money:
// the currency symbol followed by the grouped number, so negatives read
// "$-1,234.50".
func FormatUSD(d decimal.Decimal) string {
	return CurrencySymbol + FormatAmount(d)
}

// FormatUSDFixed is FormatUSD with a fixed number of fraction digits.
func FormatUSDFixed(d decimal.Decimal, places int) string {
	return CurrencySymbol + FormatFixed(d, places)
}

// FormatPct formats a percentage with an explicit sign and one decimal.
// e.g., 50 → "+50.0%", 0 → "+0.0%", -12.34 → "-12.3%"
func FormatPct(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// roundLikeFloat rounds d to places the way fixed-point float formatting
// does: only exact ties need the binary value to pick a side.
func roundLikeFloat(d decimal.Decimal, places int32) decimal.Decimal {
	scaled := d.Shift(places)
	if !scaled.Sub(scaled.Truncate(0)).Abs().Equal(half) {
		return d.Round(places)
	}
	text := new(big.Float).SetFloat64(d.InexactFloat64()).Text('f', 1100)
	binary, err := decimal.NewFromString(text)
	if err != nil {
		return d.RoundBank(places)
	}
	switch binary.Cmp(d) {
	case 1:
		return d.RoundCeil(places)
	case -1:
		return d.RoundFloor(places)
	default:
		return d.RoundBank(places)
	}
}

// groupThousands renders an already rounded d with places fraction digits.
// Values whose minor units fit in an int64 go through a go-money formatter
// with no currency grapheme, so the sign stays next to the digits. Larger
// values are grouped from their decimal string.
func groupThousands(d decimal.Decimal, places int) string {
	minor := d.Shift(int32(places))
	if minor.Abs().LessThanOrEqual(maxMinorUnits) {
		f := money.NewFormatter(places, ".", ",", "", "1")
		return f.Format(minor.IntPart())
	}
	return groupDigits(d.StringFixed(int32(places)))
}

// groupDigits inserts commas into the integer part of a plain decimal string.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
