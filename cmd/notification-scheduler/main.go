package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examprephub/examprep-backend/internal/config"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/rabbitmq"
	"github.com/examprephub/examprep-backend/internal/services/scheduler"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

const (
	connectRetries = 5
	connectDelay   = 3 * time.Second
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting notification-scheduler", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, connectRetries, connectDelay)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("success to connect to RabbitMQ")
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		logger.Error("failed to setup RabbitMQ channel", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("success to setup RabbitMQ channel")
	defer func() {
		_ = ch.Close()
	}()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	service := scheduler.NewSchedulerService(db, logger)

	go service.SweepExpiredSubscriptions(ctx)
	service.NotifyExpiringSubscriptions(ctx, ch)

	logger.Info("notification-scheduler stopped gracefully")
}
