// Package health implements the liveness and readiness probe.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/response"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
)

// Pinger reports storage readiness.
type Pinger func() error

// Handler answers health probes.
type Handler struct {
	log  *slog.Logger
	ping Pinger
}

// New creates a new Handler.
func New(log *slog.Logger, ping Pinger) *Handler {
	return &Handler{log: log, ping: ping}
}

// ServeHTTP godoc
// @Summary Health probe
// @Description Reports whether the service and its storage are up.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response "Healthy"
// @Failure 503 {object} response.ErrorResponse "Storage unavailable"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(); err != nil {
			h.log.Error("storage not ready", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("storage unavailable"))
			return
		}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{"healthy": true}))
}
