// Package create реализует HTTP-обработчик добавления урока курса.
// Доступен только администратору.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы добавления уроков.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления урока.
type Service interface {
	CreateLesson(ctx context.Context, dummy models.DummyLesson) error
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
// @Summary Добавить урок
// @Description Добавляет урок с контентом в трёх раскладках. Только для администратора.
// @Tags Lessons
// @Accept  json
// @Produce  json
// @Param request body models.DummyLesson true "Данные нового урока"
// @Success 200 {object} map[string]any "Урок создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Раздел не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /lessons [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLesson
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("lesson_id", req.ID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.CreateLesson(r.Context(), req); err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			log.Warn("section not found", slog.String("section_id", req.SectionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("section not found"))
			return
		}
		log.Error("failed to create lesson", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create lesson"))
		return
	}

	log.Info("lesson created", slog.String("lesson_id", req.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"lesson_id": req.ID,
	}))
}
