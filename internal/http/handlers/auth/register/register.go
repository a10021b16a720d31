// Package register implements the HTTP handler for firm registration.
//
// The handler validates the request, creates the pending account together
// with its first payment attempt and returns the signed checkout payload the
// frontend submits to the payment gateway.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/response"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/services/auth"
	"github.com/Tebogokaulela455/kaulela-backend/internal/storage/repository"
)

// Service describes the registration business logic.
type Service interface {
	Register(ctx context.Context, firmName, email, phone, rawPassword string) (*auth.RegisterResult, error)
}

// Handler handles registration requests.
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

// Request is the registration payload.
type Request struct {
	FirmName string `json:"firm_name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ServeHTTP godoc
// @Summary Register a law firm
// @Description Creates a pending account and returns the signed payment checkout.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Registration data"
// @Success 200 {object} map[string]any "Account uid and checkout payload"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	result, err := h.service.Register(r.Context(), req.FirmName, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			log.Warn("email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already registered"))
			return
		}
		log.Error("failed to register account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register account"))
		return
	}

	log.Info("account registered",
		slog.String("account_uid", result.AccountUID),
		slog.String("m_payment_id", result.PaymentID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"account_uid":  result.AccountUID,
		"m_payment_id": result.PaymentID,
		"checkout": map[string]any{
			"process_url": result.Checkout.ProcessURL,
			"fields":      result.Checkout.Map(),
		},
	}))
}
