// Package kaulela assembles the API server: storage, cache, queue, the
// gateway clients and the HTTP routes.
package kaulela

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/Tebogokaulela455/kaulela-backend/internal/cache"
	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/rabbitmq"
	"github.com/Tebogokaulela455/kaulela-backend/internal/migrations"
	"github.com/Tebogokaulela455/kaulela-backend/internal/payfast"
	"github.com/Tebogokaulela455/kaulela-backend/internal/quickbooks"
	"github.com/Tebogokaulela455/kaulela-backend/internal/searchworks"
	authservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/auth"
	matterservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/matter"
	notificationservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/notification"
	paymentservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/payment"
	reportservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/report"
	searchservice "github.com/Tebogokaulela455/kaulela-backend/internal/services/search"
	"github.com/Tebogokaulela455/kaulela-backend/internal/storage/repository"

	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/jwt"
)

// App is the assembled API server.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
}

// New wires storage, cache, the queue and the services into a ready server.
// Redis and RabbitMQ are optional: with an empty address the related features
// degrade (no lookup cache, no SMS events) but the server still starts.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	var cacheRedis *cache.Cache
	if cfg.RedisConnection.AddressRedis != "" {
		cacheRedis, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
	}

	var amqpConn *amqp.Connection
	var publisher *notificationservice.Publisher
	if cfg.AmqpConnectionString != "" {
		amqpConn, err = rabbitmq.Connect(cfg.AmqpConnectionString, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetNotificationQueues())
		if err != nil {
			return nil, err
		}
		publisher = notificationservice.NewPublisher(ch)
	}

	var validator paymentservice.Validator
	if cfg.PayFast.ValidateITN {
		validator = payfast.NewClient(cfg.PayFast.Sandbox, cfg.PayFast.ValidateTimeout)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	authSvc := authservice.New(db, jwtMaker, cfg.PayFast)

	var paymentPublisher paymentservice.EventPublisher
	if publisher != nil {
		paymentPublisher = publisher
	}
	paymentSvc := paymentservice.New(logger, db, validator, paymentPublisher, cfg.PayFast)

	var ledger matterservice.Ledger
	var accounting reportservice.Accounting
	if cfg.QuickBooks.BaseURL != "" {
		qb := quickbooks.New(cfg.QuickBooks)
		ledger = qb
		accounting = qb
	}
	var matterPublisher matterservice.EventPublisher
	if publisher != nil {
		matterPublisher = publisher
	}
	matterSvc := matterservice.New(logger, db, ledger, db, matterPublisher)

	var reportSvc *reportservice.Service
	if accounting != nil {
		reportSvc = reportservice.New(accounting)
	}

	var searchSvc *searchservice.Service
	if cfg.SearchWorks.APIURL != "" {
		var resultCache searchservice.ResultCache
		if cacheRedis != nil {
			resultCache = cacheRedis
		}
		registry := searchworks.New(cfg.SearchWorks)
		searchSvc = searchservice.New(logger, registry, resultCache, cfg.SearchWorks.CacheTTL)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authSvc, paymentSvc, matterSvc, searchSvc, reportSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.amqpConn != nil {
			_ = a.amqpConn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
