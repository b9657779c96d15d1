// Package examprep предоставляет маршруты для основного приложения.
package examprep

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	accesscheck "github.com/examprephub/examprep-backend/internal/http/handlers/access/check"
	"github.com/examprephub/examprep-backend/internal/http/handlers/auth/login"
	"github.com/examprephub/examprep-backend/internal/http/handlers/auth/register"
	examcreate "github.com/examprephub/examprep-backend/internal/http/handlers/exam/create"
	examlist "github.com/examprephub/examprep-backend/internal/http/handlers/exam/list"
	examremove "github.com/examprephub/examprep-backend/internal/http/handlers/exam/remove"
	examupdate "github.com/examprephub/examprep-backend/internal/http/handlers/exam/update"
	lessoncreate "github.com/examprephub/examprep-backend/internal/http/handlers/lesson/create"
	lessonlist "github.com/examprephub/examprep-backend/internal/http/handlers/lesson/list"
	lessonremove "github.com/examprephub/examprep-backend/internal/http/handlers/lesson/remove"
	lessonupdate "github.com/examprephub/examprep-backend/internal/http/handlers/lesson/update"
	questioncreate "github.com/examprephub/examprep-backend/internal/http/handlers/question/create"
	questionlist "github.com/examprephub/examprep-backend/internal/http/handlers/question/list"
	referralapply "github.com/examprephub/examprep-backend/internal/http/handlers/referral/apply"
	referralstatus "github.com/examprephub/examprep-backend/internal/http/handlers/referral/status"
	resultcreate "github.com/examprephub/examprep-backend/internal/http/handlers/result/create"
	resultlist "github.com/examprephub/examprep-backend/internal/http/handlers/result/list"
	sectioncreate "github.com/examprephub/examprep-backend/internal/http/handlers/section/create"
	sectionlist "github.com/examprephub/examprep-backend/internal/http/handlers/section/list"
	subscriptionlist "github.com/examprephub/examprep-backend/internal/http/handlers/subscription/list"
	"github.com/examprephub/examprep-backend/internal/http/middlewarectx"
	accessservice "github.com/examprephub/examprep-backend/internal/services/access"
	authservice "github.com/examprephub/examprep-backend/internal/services/auth"
	contentservice "github.com/examprephub/examprep-backend/internal/services/content"
	referralservice "github.com/examprephub/examprep-backend/internal/services/referral"
	resultservice "github.com/examprephub/examprep-backend/internal/services/result"
	subscriptionservice "github.com/examprephub/examprep-backend/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.Service,
	accessResolver *accessservice.Resolver,
	referralService *referralservice.Service,
	contentService *contentservice.Service,
	resultService *resultservice.Service,
	subscriptionService *subscriptionservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с аутентификацией по cookie
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.CookieAuthMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/access/check", accesscheck.New(logger, accessResolver).ServeHTTP)
			r.Post("/referral/apply", referralapply.New(logger, referralService).ServeHTTP)
			r.Get("/referral/status", referralstatus.New(logger, referralService).ServeHTTP)
			r.Get("/subscriptions", subscriptionlist.New(logger, subscriptionService).ServeHTTP)

			r.Get("/exams", examlist.New(logger, contentService).ServeHTTP)
			r.Get("/sections", sectionlist.New(logger, contentService).ServeHTTP)
			r.Get("/lessons", lessonlist.New(logger, contentService).ServeHTTP)
			r.Get("/topicwise/{topicId}/questions", questionlist.New(logger, contentService).ServeHTTP)

			r.Post("/results", resultcreate.New(logger, resultService).ServeHTTP)
			r.Get("/results", resultlist.New(logger, resultService).ServeHTTP)

			// Админская группа
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))

				r.Post("/exams", examcreate.New(logger, contentService).ServeHTTP)
				r.Put("/exams/{id}", examupdate.New(logger, contentService).ServeHTTP)
				r.Delete("/exams/{id}", examremove.New(logger, contentService).ServeHTTP)

				r.Post("/sections", sectioncreate.New(logger, contentService).ServeHTTP)
				r.Post("/lessons", lessoncreate.New(logger, contentService).ServeHTTP)
				r.Put("/lessons/{id}", lessonupdate.New(logger, contentService).ServeHTTP)
				r.Delete("/lessons/{id}", lessonremove.New(logger, contentService).ServeHTTP)

				r.Post("/topicwise/questions", questioncreate.New(logger, contentService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
