package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/parcelas/internal/encoding"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

var (
	ErrNoHeader = errors.New("no known fee table header found")
	ErrNoTiers  = errors.New("no installment rows found")
)

// Parser reads fee tables exported from acquirer portals or spreadsheets.
//
// Lines before the header may carry metadata as "Bandeira;<issuer>" and
// "Atualizado;<date>". After the header every row whose first fee column
// holds an installment count ("3" or "3x") becomes a tier; other rows are
// skipped.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (pricing.IssuerTable, error) {
	utf8Reader, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return pricing.IssuerTable{}, fmt.Errorf("detecting encoding: %w", err)
	}

	content, err := io.ReadAll(utf8Reader)
	if err != nil {
		return pricing.IssuerTable{}, fmt.Errorf("reading file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return pricing.IssuerTable{}, fmt.Errorf("failed to read csv: %w", err)
	}

	var (
		table   pricing.IssuerTable
		profile *Profile
		cols    map[string]int
	)

	for n, row := range rows {
		if profile == nil {
			readMetadata(&table, row)
			profile, cols = matchHeader(row)

			continue
		}

		tier, ok, err := parseRow(*profile, cols, row)
		if err != nil {
			return pricing.IssuerTable{}, fmt.Errorf("line %d: %w", n+1, err)
		}

		if ok {
			table.Tiers = append(table.Tiers, tier)
		}
	}

	if profile == nil {
		return pricing.IssuerTable{}, ErrNoHeader
	}

	if len(table.Tiers) == 0 {
		return pricing.IssuerTable{}, ErrNoTiers
	}

	return table, nil
}

func detectDelimiter(content []byte) rune {
	if bytes.ContainsRune(content, ';') {
		return ';'
	}

	return ','
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func readMetadata(table *pricing.IssuerTable, row []string) {
	if len(row) < 2 {
		return
	}

	value := strings.TrimSpace(row[1])

	switch normalize(row[0]) {
	case "bandeira", "issuer":
		table.Issuer = value
	case "atualizado", "atualizado em", "updated":
		table.Updated = normalizeDate(value)
	}
}

// normalizeDate turns "02/06/2025" into "2025-06-02"; other values are kept as is.
func normalizeDate(s string) string {
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t.Format(time.DateOnly)
	}

	return s
}

func matchHeader(row []string) (*Profile, map[string]int) {
	cols := make(map[string]int, len(row))
	for i, col := range row {
		cols[normalize(col)] = i
	}

	for i := range profiles {
		matched := true

		for _, c := range profiles[i].requiredCols() {
			if _, ok := cols[c]; !ok {
				matched = false
				break
			}
		}

		if matched {
			return &profiles[i], cols
		}
	}

	return nil, nil
}

func parseRow(p Profile, cols map[string]int, row []string) (pricing.FeeTier, bool, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if name == "" || !ok || i >= len(row) {
			return ""
		}

		return row[i]
	}

	raw := strings.TrimSuffix(normalize(cell(p.InstallmentsCol)), "x")

	installments, err := strconv.Atoi(raw)
	if err != nil {
		// Banner, footer or blank line.
		return pricing.FeeTier{}, false, nil
	}

	mdr, err := parsePercent(cell(p.MDRCol))
	if err != nil {
		return pricing.FeeTier{}, false, fmt.Errorf("parsing mdr %q: %w", cell(p.MDRCol), err)
	}

	rr, err := parsePercent(cell(p.RRCol))
	if err != nil {
		return pricing.FeeTier{}, false, fmt.Errorf("parsing rr %q: %w", cell(p.RRCol), err)
	}

	total := mdr.Add(rr)

	if p.TotalCol != "" {
		total, err = parsePercent(cell(p.TotalCol))
		if err != nil {
			return pricing.FeeTier{}, false, fmt.Errorf("parsing total %q: %w", cell(p.TotalCol), err)
		}
	}

	if p.MDRCol == "" && p.RRCol == "" {
		mdr = total
	}

	return pricing.FeeTier{
		Installments: installments,
		MDR:          mdr.InexactFloat64(),
		RR:           rr.InexactFloat64(),
		Total:        total.InexactFloat64(),
	}, true, nil
}
