// Package remove реализует HTTP-обработчик удаления экзамена.
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

// Handler обрабатывает HTTP-запросы удаления экзаменов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления экзамена.
type Service interface {
	RemoveExam(ctx context.Context, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить экзамен
// @Description Удаляет экзамен по ID. Только для администратора.
// @Tags Exams
// @Produce  json
// @Param id path string true "ID экзамена"
// @Success 200 {object} map[string]any "Экзамен удалён"
// @Failure 400 {object} response.ErrorResponse "Пустой ID"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Экзамен не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /exams/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.exam.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing exam id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if err := h.service.RemoveExam(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrExamNotFound) {
			log.Info("exam not found", slog.String("exam_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("exam not found"))
			return
		}
		log.Error("failed to remove exam", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove exam"))
		return
	}

	log.Info("exam removed", slog.String("exam_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"exam_id": id,
	}))
}
