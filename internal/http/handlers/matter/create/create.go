// Package create implements the HTTP handler for opening a legal matter.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/middlewarectx"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/response"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

// Service describes the matter creation business logic.
type Service interface {
	Create(ctx context.Context, accountUID string, dummy models.DummyMatter) (*models.Matter, error)
}

// Handler handles matter creation requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Open a matter
// @Description Stores a legal matter and opens its accounting ledger account.
// @Tags Matters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyMatter true "Matter data"
// @Success 200 {object} map[string]any "Created matter"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /matters [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.matter.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMatter
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	accountUID, ok := r.Context().Value(middlewarectx.AccountUID).(string)
	if !ok || accountUID == "" {
		log.Error("account uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	matter, err := h.service.Create(r.Context(), accountUID, req)
	if err != nil {
		log.Error("failed to create matter", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create matter"))
		return
	}

	log.Info("matter created", slog.Int("matter_id", matter.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":         matter.ID,
		"ledger_ref": matter.LedgerRef,
	}))
}
