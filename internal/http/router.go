package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/parcelas/internal/http/auth"
	"github.com/MrJamesThe3rd/parcelas/internal/http/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/http/quote"
)

type Options struct {
	AllowedOrigins []string
	// JWTSecret signs admin tokens. Empty disables table import.
	JWTSecret string
}

func New(
	opts Options,
	issuersV1 *issuer.Handler,
	quotesV1 *quote.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/issuers", func(r chi.Router) {
			issuersV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin(opts.JWTSecret))
				issuersV1.AdminRoutes(r)
			})
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			quotesV1.Routes(r)
		})
	})

	return router
}
