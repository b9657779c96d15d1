// Package remove реализует HTTP-обработчик удаления урока.
// Доступен только администратору.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы удаления уроков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления урока.
type Service interface {
	RemoveLesson(ctx context.Context, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить урок
// @Description Удаляет урок по ID. Только для администратора.
// @Tags Lessons
// @Produce  json
// @Param id path string true "ID урока"
// @Success 200 {object} map[string]any "Урок удалён"
// @Failure 400 {object} response.ErrorResponse "Пустой ID"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Урок не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /lessons/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing lesson id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if err := h.service.RemoveLesson(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			log.Info("lesson not found", slog.String("lesson_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("lesson not found"))
			return
		}
		log.Error("failed to remove lesson", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove lesson"))
		return
	}

	log.Info("lesson removed", slog.String("lesson_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"lesson_id": id,
	}))
}
