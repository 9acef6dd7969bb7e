package quote

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

// Lookup resolves an issuer name to its fee table.
type Lookup interface {
	Lookup(name string) (pricing.IssuerTable, error)
}

type Request struct {
	Issuer      string
	Price       float64
	SimplesRate float64 // decimal fraction, 0.05 for 5%
}

// Service validates quote requests and prices them. The pricing functions
// never see an input that fails validation here.
type Service struct {
	tables Lookup
	now    func() time.Time
}

func NewService(tables Lookup) *Service {
	return &Service{tables: tables, now: time.Now}
}

func (s *Service) Calculate(ctx context.Context, req Request) (*Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Issuer)
	if name == "" {
		return nil, ErrIssuerRequired
	}

	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) || req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	if math.IsNaN(req.SimplesRate) || req.SimplesRate <= 0 || req.SimplesRate >= 1 {
		return nil, ErrInvalidSimplesRate
	}

	table, err := s.tables.Lookup(name)
	if err != nil {
		if errors.Is(err, issuer.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrIssuerNotFound, name)
		}

		return nil, fmt.Errorf("looking up %s: %w", name, err)
	}

	for _, tier := range table.Tiers {
		if !(tier.Total/100+req.SimplesRate < 1) {
			return nil, fmt.Errorf("%w: %s %dx charges %.2f%%", ErrDegenerateRate, table.Issuer, tier.Installments, tier.Total)
		}
	}

	return &Quote{
		ID:          uuid.New(),
		Issuer:      table.Issuer,
		Updated:     table.Updated,
		BasePrice:   req.Price,
		SimplesRate: req.SimplesRate,
		Results:     pricing.BuildComparisonTable(req.Price, table, req.SimplesRate),
		CreatedAt:   s.now(),
	}, nil
}
