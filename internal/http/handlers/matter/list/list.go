// Package list implements the HTTP handler that lists a firm's matters.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/middlewarectx"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/response"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

// Service describes the matter listing business logic.
type Service interface {
	List(ctx context.Context, accountUID string) ([]*models.Matter, error)
}

// Handler handles matter listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List matters
// @Description Returns all matters of the authenticated firm.
// @Tags Matters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Matters"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /matters [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.matter.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountUID, ok := r.Context().Value(middlewarectx.AccountUID).(string)
	if !ok || accountUID == "" {
		log.Error("account uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	matters, err := h.service.List(r.Context(), accountUID)
	if err != nil {
		log.Error("failed to list matters", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list matters"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"matters": matters,
		"count":   len(matters),
	}))
}
