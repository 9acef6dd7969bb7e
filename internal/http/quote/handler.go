package quote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/parcelas/internal/export"
	"github.com/MrJamesThe3rd/parcelas/internal/http/response"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer/store"
	"github.com/MrJamesThe3rd/parcelas/internal/money"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
	"github.com/MrJamesThe3rd/parcelas/internal/settings"
)

type Handler struct {
	quoteSvc  *quote.Service
	exportSvc *export.Service
	settings  settings.Settings
}

// NewHandler prices requests without a simples_percent using defaults.
func NewHandler(quoteSvc *quote.Service, exportSvc *export.Service, defaults settings.Settings) *Handler {
	return &Handler{
		quoteSvc:  quoteSvc,
		exportSvc: exportSvc,
		settings:  defaults,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/export", h.export)
}

type createQuoteRequest struct {
	Issuer string `json:"issuer"`
	// Price is either a JSON number or a typed amount such as "1.234,56".
	Price          json.RawMessage `json:"price"`
	SimplesPercent *float64        `json:"simples_percent,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	q, ok := h.calculate(w, r)
	if !ok {
		return
	}

	response.JSON(w, http.StatusOK, toResponse(q))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	if format != "csv" && format != "text" {
		response.Error(w, http.StatusBadRequest, "format must be csv or text")
		return
	}

	q, ok := h.calculate(w, r)
	if !ok {
		return
	}

	if format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, h.exportSvc.Summary(q))

		return
	}

	var buf bytes.Buffer
	if err := h.exportSvc.WriteCSV(&buf, q); err != nil {
		slog.Error("failed to write quote csv", "quote", q.ID, "error", err)
		response.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	slug := strings.TrimSuffix(store.FileName(q.Issuer), ".json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="parcelas-%s.csv"`, slug))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// calculate decodes the request and prices it, writing the error response on failure.
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) (*quote.Quote, bool) {
	var req createQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		response.Error(w, http.StatusBadRequest, quote.ErrInvalidPrice.Error())
		return nil, false
	}

	cfg := h.settings
	if req.SimplesPercent != nil {
		cfg, err = settings.New(*req.SimplesPercent)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
	}

	q, err := h.quoteSvc.Calculate(r.Context(), quote.Request{
		Issuer:      req.Issuer,
		Price:       price,
		SimplesRate: cfg.SimplesRate(),
	})
	if err != nil {
		writeQuoteError(w, err)
		return nil, false
	}

	return q, true
}

func parsePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, quote.ErrInvalidPrice
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}

		return money.ParseAmount(s)
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}

	return v, nil
}

func writeQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quote.ErrIssuerRequired),
		errors.Is(err, quote.ErrInvalidPrice),
		errors.Is(err, quote.ErrInvalidSimplesRate):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quote.ErrIssuerNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, quote.ErrDegenerateRate):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("failed to calculate quote", "error", err)
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}
