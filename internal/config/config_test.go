package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/parcelas/internal/config"
	"github.com/MrJamesThe3rd/parcelas/internal/settings"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Parcelas", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, config.SourceFiles, cfg.Tables.Source)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, 0.05, s.SimplesRate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SIMPLES_PERCENT", "6.5")
	t.Setenv("TABLES_SOURCE", "postgres")
	t.Setenv("DB_NAME", "fees")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 6.5, cfg.Tax.SimplesPercent)
	assert.Equal(t, config.SourcePostgres, cfg.Tables.Source)
	assert.Equal(t, "postgres://postgres:@localhost:5432/fees?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("Source", func(t *testing.T) {
		t.Setenv("TABLES_SOURCE", "redis")

		_, err := config.Load()
		assert.ErrorContains(t, err, "TABLES_SOURCE")
	})

	t.Run("SimplesPercent", func(t *testing.T) {
		t.Setenv("SIMPLES_PERCENT", "100")

		_, err := config.Load()
		assert.ErrorIs(t, err, settings.ErrInvalidPercent)
	})
}
