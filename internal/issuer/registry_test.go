package issuer_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

func table(name string, totals ...float64) pricing.IssuerTable {
	t := pricing.IssuerTable{Issuer: name, Updated: "2025-06-02"}
	for i, total := range totals {
		t.Tiers = append(t.Tiers, pricing.FeeTier{Installments: i + 1, MDR: total, Total: total})
	}

	return t
}

func TestNewRegistry_SortsByLocale(t *testing.T) {
	reg := issuer.NewRegistry([]pricing.IssuerTable{
		table("Visa", 3.15),
		table("Élo Mais", 3.79),
		table("Amex", 4.19),
		table("hipercard", 3.69),
	})

	assert.Equal(t, []string{"Amex", "Élo Mais", "hipercard", "Visa"}, reg.Names())
	assert.Equal(t, 4, reg.Len())
}

func TestRegistry_Lookup(t *testing.T) {
	reg := issuer.NewRegistry([]pricing.IssuerTable{
		table("Visa", 3.15, 4.48),
		table("Élo Mais", 3.79),
	})

	tests := []struct {
		name    string
		query   string
		want    string
		wantErr error
	}{
		{name: "Exact", query: "Visa", want: "Visa"},
		{name: "Upper", query: "VISA", want: "Visa"},
		{name: "Spaces", query: "  visa ", want: "Visa"},
		{name: "Accented", query: "ÉLO MAIS", want: "Élo Mais"},
		{name: "Unknown", query: "Diners", wantErr: issuer.ErrNotFound},
		{name: "Empty", query: "", wantErr: issuer.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Lookup(tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Issuer)
		})
	}
}

func TestRegistry_IsReadOnly(t *testing.T) {
	src := []pricing.IssuerTable{table("Visa", 3.15, 4.48)}
	reg := issuer.NewRegistry(src)

	src[0].Tiers[0].Total = 99

	got, err := reg.Lookup("visa")
	require.NoError(t, err)
	assert.Equal(t, 3.15, got.Tiers[0].Total)

	got.Tiers[0].Total = 42

	again, err := reg.Lookup("visa")
	require.NoError(t, err)
	assert.Equal(t, 3.15, again.Tiers[0].Total)

	all := reg.Tables()
	all[0].Tiers[1].Total = 42
	assert.Equal(t, 4.48, reg.Tables()[0].Tiers[1].Total)
}

func TestNewRegistry_Duplicates(t *testing.T) {
	reg := issuer.NewRegistry([]pricing.IssuerTable{
		table("Visa", 3.15),
		table("VISA", 9.99),
	})

	require.Equal(t, 1, reg.Len())

	got, err := reg.Lookup("visa")
	require.NoError(t, err)
	assert.Contains(t, []string{"Visa", "VISA"}, got.Issuer)
}

func TestNewRegistry_Empty(t *testing.T) {
	reg := issuer.NewRegistry(nil)

	assert.Zero(t, reg.Len())
	assert.Empty(t, reg.Names())

	_, err := reg.Lookup("visa")
	assert.ErrorIs(t, err, issuer.ErrNotFound)
}

func TestRegistry_ConcurrentLookup(t *testing.T) {
	reg := issuer.NewRegistry([]pricing.IssuerTable{table("Visa", 3.15), table("Elo", 3.79)})

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			name := "visa"
			if i%2 == 0 {
				name = "ELO"
			}

			_, err := reg.Lookup(name)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
}
