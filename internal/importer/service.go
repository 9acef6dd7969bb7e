package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/parcelas/internal/importer/csvtable"
	"github.com/MrJamesThe3rd/parcelas/internal/importer/jsontable"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

type Service struct {
	csvImporter  Importer
	jsonImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter:  csvtable.New(),
		jsonImporter: jsontable.New(),
	}
}

// Import parses a fee table. A non-empty issuerName replaces the name found in the file.
func (s *Service) Import(format Format, issuerName string, r io.Reader) (pricing.IssuerTable, error) {
	var importer Importer

	switch Format(strings.ToLower(string(format))) {
	case FormatCSV:
		importer = s.csvImporter
	case FormatJSON:
		importer = s.jsonImporter
	default:
		return pricing.IssuerTable{}, fmt.Errorf("unknown format: %s", format)
	}

	table, err := importer.Parse(r)
	if err != nil {
		return pricing.IssuerTable{}, err
	}

	if name := strings.TrimSpace(issuerName); name != "" {
		table.Issuer = name
	}

	return table, nil
}
