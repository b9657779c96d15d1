// Package list реализует HTTP-обработчик выдачи вопросов темы.
//
// Доступ к банку вопросов решает сервис контента: администратор получает
// вопросы без проверок, остальным нужна хотя бы одна действующая подписка.
// Отсутствие подписки транслируется в 403 Forbidden.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/examprephub/examprep-backend/internal/http/middlewarectx"
	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/services/content"
)

// Handler обрабатывает HTTP-запросы списка вопросов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики банка вопросов.
type Service interface {
	ListQuestions(ctx context.Context, principal models.Principal, topicID string, now time.Time) ([]*models.Question, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вопросы темы
// @Description Возвращает вопросы темы в заданном порядке. Требуется действующая подписка любого типа, администратору — без подписки.
// @Tags Questions
// @Produce  json
// @Param topicId path string true "ID темы"
// @Success 200 {object} map[string]any "Список вопросов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет действующей подписки"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /topicwise/{topicId}/questions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	topicID := chi.URLParam(r, "topicId")
	if topicID == "" {
		log.Error("missing topic id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid topic id"))
		return
	}

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	questions, err := h.service.ListQuestions(r.Context(), principal, topicID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, content.ErrSubscriptionRequired) {
			log.Info("questions denied, no active subscription",
				slog.String("user_uid", principal.UserUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("active subscription required"))
			return
		}
		log.Error("failed to list questions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list questions"))
		return
	}

	log.Info("questions listed",
		slog.String("topic_id", topicID),
		slog.Int("count", len(questions)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"questions": questions,
	}))
}
