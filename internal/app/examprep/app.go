// Package examprep собирает приложение платформы подготовки к экзаменам:
// хранилище, миграции, кеш, сервисы и HTTP-сервер.
package examprep

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/examprephub/examprep-backend/internal/cache"
	"github.com/examprephub/examprep-backend/internal/config"
	"github.com/examprephub/examprep-backend/internal/lib/jwt"
	"github.com/examprephub/examprep-backend/internal/migrations"
	accessservice "github.com/examprephub/examprep-backend/internal/services/access"
	authservice "github.com/examprephub/examprep-backend/internal/services/auth"
	contentservice "github.com/examprephub/examprep-backend/internal/services/content"
	referralservice "github.com/examprephub/examprep-backend/internal/services/referral"
	resultservice "github.com/examprephub/examprep-backend/internal/services/result"
	subscriptionservice "github.com/examprephub/examprep-backend/internal/services/subscription"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает хранилище, прогоняет миграции,
// поднимает кеш и собирает сервисы с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	tokenMaker := jwt.NewMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	authService := authservice.New(db, tokenMaker, logger)
	accessResolver := accessservice.NewResolver(db, logger, "")
	referralService := referralservice.New(db, db, db, logger)
	contentService := contentservice.New(db, db, cacheRedis, logger)
	resultService := resultservice.New(db, logger)
	subscriptionService := subscriptionservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, accessResolver, referralService, contentService, resultService, subscriptionService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста либо
// ошибки сервера. При отмене выполняется graceful shutdown.
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
		_ = a.db.DB.Close()
		return err
	}
}
