// The reconciler worker periodically cancels accounts stuck in pending with
// no completed payment.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
	"github.com/Tebogokaulela455/kaulela-backend/internal/services/reconciler"
	"github.com/Tebogokaulela455/kaulela-backend/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting reconciler", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.DB.Close()

	reconciler.New(logger, db, cfg.Reconciler).Run(ctx)

	logger.Info("reconciler stopped gracefully")
}
