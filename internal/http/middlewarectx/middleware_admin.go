package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/models"
)

// AdminOnlyMiddleware создает middleware, пропускающий только администраторов.
// Ставится после CookieAuthMiddleware: неаутентифицированный запрос получает
// 401, аутентифицированный без роли admin — 403.
func AdminOnlyMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminOnlyMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			if principal.Role != models.RoleAdmin {
				log.Error("admin access denied",
					slog.String("user_uid", principal.UserUID),
					slog.String("role", string(principal.Role)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
