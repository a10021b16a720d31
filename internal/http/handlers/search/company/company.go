// Package company implements the HTTP handler for company-registry lookups.
package company

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/response"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

// Service describes the lookup business logic.
type Service interface {
	SearchCompany(ctx context.Context, query string) ([]models.Company, error)
}

// Handler handles company lookup requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Search the company registry
// @Description Looks up CIPC records by company name or registration number.
// @Tags Search
// @Produce json
// @Security BearerAuth
// @Param query query string true "Company name or registration number"
// @Success 200 {object} map[string]any "Matching companies"
// @Failure 400 {object} response.ErrorResponse "Missing query"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /search/companies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.search.company"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("query")
	if query == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter is required"))
		return
	}

	companies, err := h.service.SearchCompany(r.Context(), query)
	if err != nil {
		log.Error("failed to search companies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search companies"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"companies": companies,
		"count":     len(companies),
	}))
}
