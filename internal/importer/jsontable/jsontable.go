package jsontable

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/parcelas/internal/encoding"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

// Importer reads tables in the same JSON shape the service ships with.
type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) (pricing.IssuerTable, error) {
	utf8Reader, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return pricing.IssuerTable{}, fmt.Errorf("detecting encoding: %w", err)
	}

	var t pricing.IssuerTable
	if err := json.NewDecoder(utf8Reader).Decode(&t); err != nil {
		return pricing.IssuerTable{}, fmt.Errorf("decoding json table: %w", err)
	}

	return t, nil
}
