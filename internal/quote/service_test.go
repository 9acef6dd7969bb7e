package quote_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
)

func registry() *issuer.Registry {
	return issuer.NewRegistry([]pricing.IssuerTable{
		{
			Issuer:  "Visa",
			Updated: "2025-06-02",
			Tiers: []pricing.FeeTier{
				{Installments: 3, MDR: 4.39, RR: 4.13, Total: 8.52},
				{Installments: 1, MDR: 3.15, RR: 0, Total: 3.15},
			},
		},
		{
			Issuer: "Broken",
			Tiers:  []pricing.FeeTier{{Installments: 12, MDR: 90, RR: 5, Total: 95}},
		},
	})
}

type failingLookup struct{}

func (failingLookup) Lookup(string) (pricing.IssuerTable, error) {
	return pricing.IssuerTable{}, errors.New("boom")
}

func TestService_Calculate(t *testing.T) {
	svc := quote.NewService(registry())

	q, err := svc.Calculate(context.Background(), quote.Request{
		Issuer:      "visa",
		Price:       100,
		SimplesRate: pricing.DefaultSimplesRate,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "Visa", q.Issuer)
	assert.Equal(t, "2025-06-02", q.Updated)
	assert.Equal(t, 100.0, q.BasePrice)
	assert.False(t, q.CreatedAt.IsZero())
	require.Len(t, q.Results, 2)
	assert.Equal(t, 1, q.Results[0].Installments)

	r, ok := q.Selected(3)
	require.True(t, ok)
	assert.Equal(t, 109.86, r.FinalPrice)
	assert.Equal(t, 36.62, r.PerInstallment)

	_, ok = q.Selected(7)
	assert.False(t, ok)
}

func TestService_Calculate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     quote.Request
		wantErr error
	}{
		{name: "MissingIssuer", req: quote.Request{Issuer: " ", Price: 100, SimplesRate: 0.05}, wantErr: quote.ErrIssuerRequired},
		{name: "ZeroPrice", req: quote.Request{Issuer: "Visa", Price: 0, SimplesRate: 0.05}, wantErr: quote.ErrInvalidPrice},
		{name: "NegativePrice", req: quote.Request{Issuer: "Visa", Price: -3, SimplesRate: 0.05}, wantErr: quote.ErrInvalidPrice},
		{name: "ZeroRate", req: quote.Request{Issuer: "Visa", Price: 100, SimplesRate: 0}, wantErr: quote.ErrInvalidSimplesRate},
		{name: "RateOfOne", req: quote.Request{Issuer: "Visa", Price: 100, SimplesRate: 1}, wantErr: quote.ErrInvalidSimplesRate},
		{name: "UnknownIssuer", req: quote.Request{Issuer: "Diners", Price: 100, SimplesRate: 0.05}, wantErr: quote.ErrIssuerNotFound},
		{name: "DegenerateTier", req: quote.Request{Issuer: "broken", Price: 100, SimplesRate: 0.05}, wantErr: quote.ErrDegenerateRate},
	}

	svc := quote.NewService(registry())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := svc.Calculate(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, q)
		})
	}
}

func TestService_Calculate_NonFinitePrice(t *testing.T) {
	svc := quote.NewService(registry())

	for _, price := range []float64{math.NaN(), math.Inf(1)} {
		_, err := svc.Calculate(context.Background(), quote.Request{Issuer: "Visa", Price: price, SimplesRate: 0.05})
		assert.ErrorIs(t, err, quote.ErrInvalidPrice)
	}
}

func TestService_Calculate_LookupError(t *testing.T) {
	_, err := quote.NewService(failingLookup{}).Calculate(context.Background(), quote.Request{
		Issuer: "Visa", Price: 100, SimplesRate: 0.05,
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, quote.ErrIssuerNotFound)
}

func TestService_Calculate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quote.NewService(registry()).Calculate(ctx, quote.Request{Issuer: "Visa", Price: 100, SimplesRate: 0.05})
	assert.ErrorIs(t, err, context.Canceled)
}
