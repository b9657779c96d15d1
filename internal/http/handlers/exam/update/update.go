// Package update реализует HTTP-обработчик обновления экзамена.
// Доступен только администратору.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы обновления экзаменов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления экзамена.
type Service interface {
	UpdateExam(ctx context.Context, dummy models.DummyExam, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить экзамен
// @Description Обновляет экзамен по ID. Только для администратора.
// @Tags Exams
// @Accept  json
// @Produce  json
// @Param id path string true "ID экзамена"
// @Param request body models.DummyExam true "Новые данные экзамена"
// @Success 200 {object} map[string]any "Экзамен обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Экзамен не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /exams/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.exam.update"
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

	var req models.DummyExam
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.UpdateExam(r.Context(), req, id); err != nil {
		if errors.Is(err, repository.ErrExamNotFound) {
			log.Info("exam not found", slog.String("exam_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("exam not found"))
			return
		}
		log.Error("failed to update exam", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update exam"))
		return
	}

	log.Info("exam updated", slog.String("exam_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"exam_id": id,
	}))
}
