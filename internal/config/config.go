package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/parcelas/internal/settings"
)

// Table sources.
const (
	SourceFiles    = "files"
	SourcePostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Parcelas"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"parcelas"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	}

	Tables struct {
		// Source is where issuer tables are loaded from: "files" or "postgres".
		Source string `envconfig:"TABLES_SOURCE" default:"files"`
		// Dir holds one JSON file per issuer. Empty uses the tables built into the binary.
		Dir string `envconfig:"TABLES_DIR"`
	}

	Tax struct {
		SimplesPercent float64 `envconfig:"SIMPLES_PERCENT" default:"5"`
	}

	Auth struct {
		// JWTSecret signs admin tokens. Empty disables table imports over HTTP.
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Settings returns the validated tax settings.
func (c *Config) Settings() (settings.Settings, error) {
	s, err := settings.New(c.Tax.SimplesPercent)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("SIMPLES_PERCENT=%v: %w", c.Tax.SimplesPercent, err)
	}

	return s, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Tables.Source {
	case SourceFiles, SourcePostgres:
	default:
		return nil, fmt.Errorf("unknown TABLES_SOURCE %q", cfg.Tables.Source)
	}

	if _, err := cfg.Settings(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
