package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidAmount = errors.New("invalid amount")

var printer = message.NewPrinter(language.BrazilianPortuguese)

// ParseAmount parses a price typed by a user into currency units.
// Accepted forms: "1.234,56", "1234,56", "1234.56", "R$ 99,90".
// A single dot without a comma is read as the decimal separator. A dot after
// the decimal comma ("1,234.56") is rejected rather than guessed.
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.ReplaceAll(clean, " ", "")

	if strings.Contains(clean, ",") && strings.LastIndex(clean, ",") < strings.LastIndex(clean, ".") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	switch {
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	if clean == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d.InexactFloat64(), nil
}

// FormatBRL formats v as Brazilian reais, e.g. "R$ 1.234,56".
func FormatBRL(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "R$ --"
	}

	return printer.Sprintf("R$ %.2f", v)
}

// FormatPercent formats a whole-number percent, e.g. "9,86 %".
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-- %"
	}

	return printer.Sprintf("%.2f %%", v)
}
