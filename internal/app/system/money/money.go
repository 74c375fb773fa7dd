// Package money holds currency arithmetic and display formatting.
//
// Amounts travel as float64 in documents and JSON. Sums are accumulated in
// integer minor units so that grouped totals add up exactly.
package money

import (
	"math"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is used when no currency symbol has been configured.
const DefaultSymbol = "₦"

var (
	mu      sync.RWMutex
	symbol  = DefaultSymbol
	printer = message.NewPrinter(language.English)
)

// Configure sets the currency symbol used by Format. An empty symbol keeps
// the current one.
func Configure(sym string) {
	if sym == "" {
		return
	}
	mu.Lock()
	symbol = sym
	mu.Unlock()
}

// Symbol returns the configured currency symbol.
func Symbol() string {
	mu.RLock()
	defer mu.RUnlock()
	return symbol
}

// Format renders an amount as the currency symbol followed by whole units
// with grouped digits, e.g. ₦1,500. Fractions are rounded half away from zero.
func Format(amount float64) string {
	return FormatWith(Symbol(), amount)
}

// FormatWith is Format with an explicit symbol.
func FormatWith(sym string, amount float64) string {
	whole := int64(math.Round(amount))
	if whole < 0 {
		return "-" + sym + printer.Sprintf("%d", -whole)
	}
	return sym + printer.Sprintf("%d", whole)
}

// Cents converts an amount to integer minor units.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts minor units back to an amount.
func FromCents(c int64) float64 {
	return float64(c) / 100
}
