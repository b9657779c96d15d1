// Package main ExamPrep Hub API
//
// @title           ExamPrep Hub API
// @version         1.0
// @description     API платформы подготовки к экзаменам: контент, подписки, доступ и рефералы
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@examprephub.in

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description JWT-токен сессии, выдаётся при входе и передаётся в httpOnly-cookie.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/examprephub/examprep-backend/docs"
	"github.com/examprephub/examprep-backend/internal/app/examprep"
	"github.com/examprephub/examprep-backend/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting examprep-backend", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := examprep.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("examprep-backend stopped gracefully")
}
