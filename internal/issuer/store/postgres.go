package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

// Postgres keeps issuer tables in the issuer_tables and fee_tiers tables.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) ListTables(ctx context.Context) ([]pricing.IssuerTable, error) {
	query := `
		SELECT t.id, t.issuer, t.updated, f.installments, f.mdr, f.rr, f.total
		FROM issuer_tables t
		LEFT JOIN fee_tiers f ON f.table_id = t.id
		ORDER BY t.issuer, f.installments
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing issuer tables: %w", err)
	}
	defer rows.Close()

	var (
		tables []pricing.IssuerTable
		byID   = make(map[uuid.UUID]int)
	)

	for rows.Next() {
		var (
			id           uuid.UUID
			name         string
			updated      sql.NullTime
			installments sql.NullInt64
			mdr, rr, tot sql.NullFloat64
		)

		if err := rows.Scan(&id, &name, &updated, &installments, &mdr, &rr, &tot); err != nil {
			return nil, fmt.Errorf("scanning issuer table: %w", err)
		}

		i, ok := byID[id]
		if !ok {
			t := pricing.IssuerTable{Issuer: name}
			if updated.Valid {
				t.Updated = updated.Time.Format(time.DateOnly)
			}

			i = len(tables)
			byID[id] = i
			tables = append(tables, t)
		}

		if !installments.Valid {
			continue
		}

		tables[i].Tiers = append(tables[i].Tiers, pricing.FeeTier{
			Installments: int(installments.Int64),
			MDR:          mdr.Float64,
			RR:           rr.Float64,
			Total:        tot.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issuer tables: %w", err)
	}

	return tables, nil
}

// SaveTable replaces the tiers of the issuer, creating the issuer row on first save.
func (s *Postgres) SaveTable(ctx context.Context, t pricing.IssuerTable) error {
	var updated *time.Time

	if t.Updated != "" {
		u, err := issuer.ParseUpdated(t.Updated)
		if err != nil {
			return err
		}

		updated = &u
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id uuid.UUID

	err = tx.QueryRowContext(ctx, `
		INSERT INTO issuer_tables (id, issuer, updated, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (lower(issuer)) DO UPDATE SET issuer = EXCLUDED.issuer, updated = EXCLUDED.updated
		RETURNING id
	`, uuid.New(), t.Issuer, updated).Scan(&id)
	if err != nil {
		return fmt.Errorf("upserting issuer table: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM fee_tiers WHERE table_id = $1`, id); err != nil {
		return fmt.Errorf("clearing fee tiers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fee_tiers (table_id, installments, mdr, rr, total)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("preparing fee tier insert: %w", err)
	}
	defer stmt.Close()

	for _, tier := range t.Tiers {
		if _, err := stmt.ExecContext(ctx, id, tier.Installments, tier.MDR, tier.RR, tier.Total); err != nil {
			return fmt.Errorf("inserting %dx tier: %w", tier.Installments, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
