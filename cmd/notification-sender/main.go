// The notification-sender worker consumes SMS events from the queue and
// delivers them through the SMS gateway.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/rabbitmq"
	"github.com/Tebogokaulela455/kaulela-backend/internal/services/notification"
	"github.com/Tebogokaulela455/kaulela-backend/internal/sms"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting notification-sender", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := rabbitmq.Connect(cfg.AmqpConnectionString, 5, 2*time.Second)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.Any("err", err))
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		logger.Error("failed to set up channel", slog.Any("err", err))
		os.Exit(1)
	}
	defer ch.Close()

	sender := notification.NewSender(logger, sms.New(cfg.SMS))
	if err := sender.Run(ctx, ch, "notification.sms"); err != nil {
		logger.Error("sender stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("notification-sender stopped gracefully")
}
