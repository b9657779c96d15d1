// Package status реализует HTTP-обработчик сводки реферальной программы:
// собственный код пользователя, счётчик наград и журнал погашений.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/examprephub/examprep-backend/internal/http/middlewarectx"
	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/services/referral"
)

// Handler обрабатывает HTTP-запросы сводки реферальной программы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	GetStatus(ctx context.Context, userUID string) (*referral.Status, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка реферальной программы
// @Description Возвращает код пользователя, счётчик наград и журнал погашений его кода.
// @Tags Referral
// @Produce  json
// @Success 200 {object} map[string]any "Сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /referral/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.referral.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	st, err := h.service.GetStatus(r.Context(), principal.UserUID)
	if err != nil {
		if errors.Is(err, referral.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to get referral status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get referral status"))
		return
	}

	log.Info("referral status returned", slog.String("user_uid", principal.UserUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": st,
	}))
}
