package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/parcelas/data"
	"github.com/MrJamesThe3rd/parcelas/internal/config"
	"github.com/MrJamesThe3rd/parcelas/internal/database"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
)

// Open returns the repository selected by cfg.Tables and a func releasing it.
// An empty Postgres source is seeded with the embedded tables.
func Open(ctx context.Context, cfg *config.Config) (issuer.Repository, func() error, error) {
	noop := func() error { return nil }

	if cfg.Tables.Source != config.SourcePostgres {
		if cfg.Tables.Dir == "" {
			slog.Info("using embedded issuer tables")
			return NewFiles(data.Tables), noop, nil
		}

		slog.Info("using issuer tables from directory", "dir", cfg.Tables.Dir)

		return NewDir(cfg.Tables.Dir), noop, nil
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := NewPostgres(db)

	if err := seed(ctx, repo); err != nil {
		db.Close()
		return nil, nil, err
	}

	return repo, db.Close, nil
}

func seed(ctx context.Context, repo *Postgres) error {
	existing, err := repo.ListTables(ctx)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		return nil
	}

	defaults, err := NewFiles(data.Tables).ListTables(ctx)
	if err != nil {
		return fmt.Errorf("reading embedded tables: %w", err)
	}

	for _, t := range defaults {
		if err := repo.SaveTable(ctx, t); err != nil {
			return fmt.Errorf("seeding %s: %w", t.Issuer, err)
		}
	}

	slog.Info("seeded issuer tables", "count", len(defaults))

	return nil
}
