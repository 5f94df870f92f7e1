// Package money formats shilling amounts the way the storefront displays them.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the display prefix for every amount.
const Currency = "KSh"

var printer = message.NewPrinter(language.English)

// Round rounds d half away from zero to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders d with thousands separators and at most two decimals, dropping a zero
// fraction: 1250 -> "1,250", 99.5 -> "99.5", 12.345 -> "12.35".
func Format(d decimal.Decimal) string {
	d = Round(d)
	whole := d.Truncate(0)
	frac := d.Sub(whole).Abs()

	s := printer.Sprintf("%d", whole.IntPart())
	if d.IsNegative() && whole.IsZero() {
		s = "-" + s
	}
	if frac.IsZero() {
		return s
	}
	// "0.5" -> ".5", "0.25" -> ".25"
	return s + frac.String()[1:]
}

// Display prefixes the formatted amount with the currency: "KSh 1,250".
func Display(d decimal.Decimal) string {
	return Currency + " " + Format(d)
}
