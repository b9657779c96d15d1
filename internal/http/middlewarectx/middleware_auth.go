// Package middlewarectx содержит HTTP middleware платформы: проверку
// сессионного токена из cookie, ограничение админских маршрутов,
// лимит запросов и счётчик запросов для Prometheus.
//
// CookieAuthMiddleware читает JWT из cookie "token", проверяет его через
// сервис аутентификации и кладёт в контекст UID пользователя и роль.
// При любом дефекте токена возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для UID пользователя в контексте
	UserUID Key = "user_uid"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// SessionCookieName имя cookie с сессионным токеном.
const SessionCookieName = "token"

// Service описывает интерфейс сервиса для валидации сессионного токена.
type Service interface {
	ValidateToken(tokenStr string) (*models.Principal, error)
}

// CookieAuthMiddleware возвращает HTTP middleware, который проверяет JWT
// из cookie "token".
//
// Если токен валиден, добавляет UID пользователя и роль в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized. Отсутствие
// cookie, просроченный токен и битая подпись наружу неразличимы.
func CookieAuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.CookieAuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				log.Error("missing session cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			principal, err := authService.ValidateToken(cookie.Value)
			if err != nil {
				log.Error("invalid or expired token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, principal.UserUID)
			ctx = context.WithValue(ctx, Role, principal.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext собирает идентичность запроса из контекста.
// Возвращает false, если запрос прошёл мимо CookieAuthMiddleware.
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	userUID, ok := ctx.Value(UserUID).(string)
	if !ok || userUID == "" {
		return models.Principal{}, false
	}
	role, ok := ctx.Value(Role).(models.Role)
	if !ok || !role.Valid() {
		return models.Principal{}, false
	}
	return models.Principal{UserUID: userUID, Role: role}, true
}
