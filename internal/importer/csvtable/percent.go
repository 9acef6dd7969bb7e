package csvtable

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parsePercent parses a percentage cell. Examples: "8,52" -> 8.52,
// "8.52%" -> 8.52, "1.234,5" -> 1234.5, "" -> 0.
func parsePercent(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if clean == "" {
		return decimal.Zero, nil
	}

	if strings.Contains(clean, ",") {
		if strings.LastIndex(clean, ",") < strings.LastIndex(clean, ".") {
			return decimal.Zero, fmt.Errorf("ambiguous decimal separators in %q", s)
		}

		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	return decimal.NewFromString(clean)
}
