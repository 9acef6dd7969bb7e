package issuer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=issuer
type Repository interface {
	ListTables(ctx context.Context) ([]pricing.IssuerTable, error)
	SaveTable(ctx context.Context, table pricing.IssuerTable) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Load reads every table from the repository and builds the registry.
// Tables that fail Validate are skipped. It is meant to run once at startup.
func (s *Service) Load(ctx context.Context) (*Registry, error) {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing issuer tables: %w", err)
	}

	valid := make([]pricing.IssuerTable, 0, len(tables))

	for _, t := range tables {
		if err := Validate(t); err != nil {
			slog.Warn("skipping issuer table", "issuer", t.Issuer, "error", err)
			continue
		}

		valid = append(valid, t)
	}

	reg := NewRegistry(valid)
	slog.Info("issuer tables loaded", "count", reg.Len(), "issuers", reg.Names())

	return reg, nil
}

// Import validates a table and stores it. The running registry is not
// affected; the table is picked up on the next Load.
func (s *Service) Import(ctx context.Context, table pricing.IssuerTable) error {
	table.Issuer = strings.TrimSpace(table.Issuer)

	if err := Validate(table); err != nil {
		return err
	}

	if err := s.repo.SaveTable(ctx, table); err != nil {
		return fmt.Errorf("saving issuer table %q: %w", table.Issuer, err)
	}

	return nil
}

// Validate checks a table before it is stored.
func Validate(table pricing.IssuerTable) error {
	if strings.TrimSpace(table.Issuer) == "" {
		return fmt.Errorf("%w: issuer name is required", ErrInvalidTable)
	}

	if table.Updated != "" {
		if _, err := ParseUpdated(table.Updated); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTable, err)
		}
	}

	if len(table.Tiers) == 0 {
		return fmt.Errorf("%w: %s has no installment tiers", ErrInvalidTable, table.Issuer)
	}

	seen := make(map[int]bool, len(table.Tiers))

	for _, tier := range table.Tiers {
		switch {
		case tier.Installments < 1:
			return fmt.Errorf("%w: installments must be at least 1, got %d", ErrInvalidTable, tier.Installments)
		case seen[tier.Installments]:
			return fmt.Errorf("%w: duplicate tier for %dx", ErrInvalidTable, tier.Installments)
		case tier.MDR < 0 || tier.RR < 0:
			return fmt.Errorf("%w: negative fee for %dx", ErrInvalidTable, tier.Installments)
		case math.IsNaN(tier.Total) || math.IsInf(tier.Total, 0):
			return fmt.Errorf("%w: total fee for %dx is not a number", ErrInvalidTable, tier.Installments)
		}

		seen[tier.Installments] = true
	}

	return nil
}
