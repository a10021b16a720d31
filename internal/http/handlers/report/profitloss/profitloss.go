// Package profitloss implements the HTTP handler for the profit and loss
// report.
package profitloss

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/response"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/quickbooks"
)

// Service describes the report business logic.
type Service interface {
	ProfitAndLoss(ctx context.Context, startDate, endDate string) (*quickbooks.ProfitAndLoss, error)
}

// Handler handles report requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Profit and loss report
// @Description Pulls the profit and loss report from the ledger provider.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Period start, YYYY-MM-DD"
// @Param end_date query string true "Period end, YYYY-MM-DD"
// @Success 200 {object} quickbooks.ProfitAndLoss "Report"
// @Failure 400 {object} response.ErrorResponse "Invalid period"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /reports/profit-loss [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.profitloss"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if !validDate(startDate) || !validDate(endDate) {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("start_date and end_date must be dates in format 2006-01-02"))
		return
	}

	report, err := h.service.ProfitAndLoss(r.Context(), startDate, endDate)
	if err != nil {
		log.Error("failed to fetch profit and loss report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch report"))
		return
	}

	render.JSON(w, r, response.OKWithData(report))
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
