package issuer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/parcelas/internal/http/response"
	"github.com/MrJamesThe3rd/parcelas/internal/importer"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
)

const maxUploadSize = 1 << 20

type Handler struct {
	registry  *issuer.Registry
	issuerSvc *issuer.Service
	importSvc *importer.Service
}

func NewHandler(registry *issuer.Registry, issuerSvc *issuer.Service, importSvc *importer.Service) *Handler {
	return &Handler{
		registry:  registry,
		issuerSvc: issuerSvc,
		importSvc: importSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{name}", h.get)
}

// AdminRoutes must be mounted behind auth.RequireAdmin.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/import", h.importTable)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, toSummaryList(h.registry.Tables()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	table, err := h.registry.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, issuer.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "issuer not found")
			return
		}

		response.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	response.JSON(w, http.StatusOK, toResponse(table))
}

func (h *Handler) importTable(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatFromPath(header.Filename)
	}

	table, err := h.importSvc.Import(format, r.FormValue("issuer"), file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.issuerSvc.Import(r.Context(), table); err != nil {
		switch {
		case errors.Is(err, issuer.ErrInvalidTable):
			response.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, issuer.ErrReadOnly):
			response.Error(w, http.StatusConflict, "issuer tables are read-only")
		default:
			slog.Error("failed to import issuer table", "issuer", table.Issuer, "error", err)
			response.Error(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	slog.Info("issuer table imported", "issuer", table.Issuer, "tiers", len(table.Tiers))
	response.JSON(w, http.StatusCreated, toResponse(table))
}
