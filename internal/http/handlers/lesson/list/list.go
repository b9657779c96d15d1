// Package list реализует HTTP-обработчик выдачи уроков курса.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы списка уроков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка уроков.
type Service interface {
	ListLessons(ctx context.Context) ([]*models.Lesson, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Уроки курса
// @Description Возвращает все уроки, сгруппированные по разделам.
// @Tags Lessons
// @Produce  json
// @Success 200 {object} map[string]any "Список уроков"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /lessons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	lessons, err := h.service.ListLessons(r.Context())
	if err != nil {
		log.Error("failed to list lessons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list lessons"))
		return
	}

	log.Info("lessons listed", slog.Int("count", len(lessons)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"lessons": lessons,
	}))
}
