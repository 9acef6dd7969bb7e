package issuer

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

// Registry is the read-only set of issuer fee tables loaded at startup.
// It is safe for concurrent use.
type Registry struct {
	tables []pricing.IssuerTable
	index  map[string]int
}

// NewRegistry sorts tables by issuer name (pt-BR collation) and indexes them
// by case-folded name. When two tables share a name the first one in sorted
// order wins.
func NewRegistry(tables []pricing.IssuerTable) *Registry {
	sorted := make([]pricing.IssuerTable, len(tables))
	for i, t := range tables {
		t.Tiers = slices.Clone(t.Tiers)
		sorted[i] = t
	}

	col := collate.New(language.BrazilianPortuguese)
	slices.SortStableFunc(sorted, func(a, b pricing.IssuerTable) int {
		return col.CompareString(a.Issuer, b.Issuer)
	})

	r := &Registry{
		tables: make([]pricing.IssuerTable, 0, len(sorted)),
		index:  make(map[string]int, len(sorted)),
	}

	for _, t := range sorted {
		key := foldName(t.Issuer)
		if _, dup := r.index[key]; dup {
			slog.Warn("duplicate issuer table ignored", "issuer", t.Issuer)
			continue
		}

		r.index[key] = len(r.tables)
		r.tables = append(r.tables, t)
	}

	return r
}

// Lookup finds a table by issuer name, ignoring case and surrounding spaces.
func (r *Registry) Lookup(name string) (pricing.IssuerTable, error) {
	i, ok := r.index[foldName(name)]
	if !ok {
		return pricing.IssuerTable{}, ErrNotFound
	}

	t := r.tables[i]
	t.Tiers = slices.Clone(t.Tiers)

	return t, nil
}

// Tables returns every table in display order.
func (r *Registry) Tables() []pricing.IssuerTable {
	out := make([]pricing.IssuerTable, len(r.tables))
	for i, t := range r.tables {
		t.Tiers = slices.Clone(t.Tiers)
		out[i] = t
	}

	return out
}

// Names returns the issuer names in display order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tables))
	for i, t := range r.tables {
		names[i] = t.Issuer
	}

	return names
}

func (r *Registry) Len() int {
	return len(r.tables)
}

// foldName builds the index key. Casers are stateful, so one is made per call.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
