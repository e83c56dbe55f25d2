// Package money holds the exact-decimal arithmetic used to reconcile split
// monetary fields. All quantization goes through Quantize so that a single
// rounding rule applies everywhere.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/dataunifier/pkg/constants"
)

// Places is the number of fractional digits kept by Quantize.
const Places int32 = constants.MoneyPlaces

var hundred = decimal.NewFromInt(100)

// Parse reads an exact decimal. Surrounding whitespace is ignored.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// Quantize rounds d to two places, half away from zero (round-half-up on
// magnitudes): 12.345 -> 12.35, -12.345 -> -12.35.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Whole truncates d toward zero, keeping the integer portion.
func Whole(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(0)
}

// Fraction returns d minus its integer portion, quantized. The result carries
// the sign of d.
func Fraction(d decimal.Decimal) decimal.Decimal {
	return Quantize(d.Sub(Whole(d)))
}

// CentsToUnits converts a cents amount to whole currency units.
func CentsToUnits(cents decimal.Decimal) decimal.Decimal {
	return cents.Div(hundred)
}

// Combine merges a euro part and a cents part into one quantized amount.
func Combine(euro, cents decimal.Decimal) decimal.Decimal {
	return Quantize(euro.Add(CentsToUnits(cents)))
}

// Format renders d keeping its scale, so 7.50 stays "7.50" and 50 stays "50".
func Format(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	return d.StringFixed(places)
}
