// Package notify implements the payment gateway's server-to-server
// notification webhook.
//
// The gateway retries deliveries that do not get a 200, so the handler
// acknowledges every notification it could fully process, including rejected
// ones. Only a storage failure returns a non-200, which makes the gateway
// redeliver once storage recovers.
package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/services/payment"
)

// maxBodySize bounds the notification body read.
const maxBodySize = 64 << 10

// Service runs the notification pipeline.
type Service interface {
	ProcessNotification(ctx context.Context, body []byte) (payment.Outcome, error)
}

// Handler handles gateway notifications.
type Handler struct {
	log      *slog.Logger
	service  Service
	outcomes *prometheus.CounterVec
}

// New creates a new Handler and registers its metrics.
func New(log *slog.Logger, service Service, reg prometheus.Registerer) *Handler {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payfast_itn_outcomes_total",
		Help: "Gateway notification outcomes by pipeline result.",
	}, []string{"outcome"})
	if reg != nil {
		reg.MustRegister(outcomes)
	}
	return &Handler{
		log:      log,
		service:  service,
		outcomes: outcomes,
	}
}

// ServeHTTP godoc
// @Summary Payment gateway notification webhook
// @Description Receives ITN posts from the gateway and activates subscriptions.
// @Tags Payments
// @Accept x-www-form-urlencoded
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 500 {string} string "storage failure, gateway will retry"
// @Router /payfast/notify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.notify"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("remote_addr", r.RemoteAddr),
	)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read notification body", sl.Err(err))
		h.outcomes.WithLabelValues(string(payment.OutcomeMalformed)).Inc()
		w.WriteHeader(http.StatusOK)
		return
	}

	outcome, err := h.service.ProcessNotification(r.Context(), body)
	if err != nil {
		log.Error("storage failed, asking gateway to retry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.outcomes.WithLabelValues(string(outcome)).Inc()
	log.Info("notification processed", slog.String("outcome", string(outcome)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
