package kaulela

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Tebogokaulela455/kaulela-backend/docs"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/auth/login"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/auth/register"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/health"
	mattercreate "github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/matter/create"
	matterlist "github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/matter/list"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/payment/checkout"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/payment/notify"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/report/profitloss"
	searchcompany "github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/search/company"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/handlers/subscription/cancel"
	"github.com/Tebogokaulela455/kaulela-backend/internal/http/middlewarectx"
	authservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/auth"
	matterservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/matter"
	paymentservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/payment"
	reportservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/report"
	searchservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/search"
	"github.com/Tebogokaulela455/kaulela-backend/internal/storage/repository"
)

// RegisterRoutes registers all routes of the API server. searchSvc and
// reportSvc may be nil when the related provider is not configured; their
// endpoints then answer 503.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authSvc *authservice.Service, paymentSvc *paymentservice.Service,
	matterSvc *matterservice.Service, searchSvc *searchservice.Service,
	reportSvc *reportservice.Service) {

	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", register.New(logger, authSvc).ServeHTTP)
		r.Post("/login", login.New(logger, authSvc).ServeHTTP)

		// The gateway posts notifications here; no authentication, the
		// signature check happens inside the pipeline.
		r.Post("/payfast/notify", notify.New(logger, paymentSvc, prometheus.DefaultRegisterer).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authSvc, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/payfast/checkout", checkout.New(logger, paymentSvc).ServeHTTP)
			r.Post("/subscription/cancel", cancel.New(logger, authSvc).ServeHTTP)

			r.Post("/matters", mattercreate.New(logger, matterSvc).ServeHTTP)
			r.Get("/matters", matterlist.New(logger, matterSvc).ServeHTTP)

			if searchSvc != nil {
				r.Get("/search/companies", searchcompany.New(logger, searchSvc).ServeHTTP)
			} else {
				r.Get("/search/companies", unavailable)
			}
			if reportSvc != nil {
				r.Get("/reports/profit-loss", profitloss.New(logger, reportSvc).ServeHTTP)
			} else {
				r.Get("/reports/profit-loss", unavailable)
			}
		})

		r.Get("/health", health.New(logger, func() error {
			return repository.CheckDatabaseReady(db)
		}).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

func unavailable(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "feature not configured", http.StatusServiceUnavailable)
}
