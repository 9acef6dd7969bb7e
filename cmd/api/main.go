package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/parcelas/internal/config"
	"github.com/MrJamesThe3rd/parcelas/internal/export"
	parcelasHttp "github.com/MrJamesThe3rd/parcelas/internal/http"
	issuerHandler "github.com/MrJamesThe3rd/parcelas/internal/http/issuer"
	quoteHandler "github.com/MrJamesThe3rd/parcelas/internal/http/quote"
	"github.com/MrJamesThe3rd/parcelas/internal/importer"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer/store"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, nil); err != nil {
		slog.Error("server failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is done. When ready is not nil it receives the
// listening address once the server accepts connections.
func run(ctx context.Context, ready chan<- string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	defaults, err := cfg.Settings()
	if err != nil {
		return fmt.Errorf("invalid tax settings: %w", err)
	}

	repo, closeRepo, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening issuer tables: %w", err)
	}

	defer func() {
		if err := closeRepo(); err != nil {
			slog.Error("failed to close issuer tables", "error", err)
		}
	}()

	issuerService := issuer.NewService(repo)

	registry, err := issuerService.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading issuer tables: %w", err)
	}

	var (
		quoteService  = quote.NewService(registry)
		importService = importer.NewService()
		exportService = export.NewService()
	)

	var (
		issuerH = issuerHandler.NewHandler(registry, issuerService, importService)
		quoteH  = quoteHandler.NewHandler(quoteService, exportService, defaults)
	)

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, table import is disabled")
	}

	router := parcelasHttp.New(parcelasHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	}, issuerH, quoteH)

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.App.Port))
	if err != nil {
		return fmt.Errorf("listening: %w", err)
	}

	serveErr := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", ln.Addr().String(), "simples_percent", defaults.SimplesPercent)

		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	slog.Info("server stopped")

	return nil
}
