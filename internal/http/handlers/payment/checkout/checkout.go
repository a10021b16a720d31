// Package checkout implements the HTTP handler that opens a fresh payment
// attempt for an authenticated account whose first checkout was abandoned.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/middlewarectx"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/response"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/payfast"
)

// Service describes the checkout business logic.
type Service interface {
	InitiateCheckout(ctx context.Context, accountUID string) (*payfast.Checkout, string, error)
}

// Handler handles checkout re-initiation.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Open a new payment checkout
// @Description Records a new payment attempt and returns the signed checkout payload.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Checkout payload"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /payfast/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkout"
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

	checkout, mPaymentID, err := h.service.InitiateCheckout(r.Context(), accountUID)
	if err != nil {
		log.Error("failed to initiate checkout", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not initiate checkout"))
		return
	}

	log.Info("checkout initiated",
		slog.String("account_uid", accountUID),
		slog.String("m_payment_id", mPaymentID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"m_payment_id": mPaymentID,
		"checkout": map[string]any{
			"process_url": checkout.ProcessURL,
			"fields":      checkout.Map(),
		},
	}))
}
