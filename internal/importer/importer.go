package importer

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

// Format is the file format of an issuer fee table.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) (pricing.IssuerTable, error)
}

// FormatFromPath guesses the format from a file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatCSV
}
