// Package create реализует HTTP-обработчик добавления экзамена в каталог.
// Доступен только администратору, проверка роли выполняется в middleware.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы добавления экзаменов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики контента
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики добавления экзамена.
type Service interface {
	CreateExam(ctx context.Context, dummy models.DummyExam) (string, error)
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
// @Summary Добавить экзамен
// @Description Добавляет экзамен в каталог. Только для администратора.
// @Tags Exams
// @Accept  json
// @Produce  json
// @Param request body models.DummyExam true "Данные нового экзамена"
// @Success 200 {object} map[string]any "Экзамен создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /exams [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.exam.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyExam
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.CreateExam(r.Context(), req)
	if err != nil {
		log.Error("failed to create exam", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create exam"))
		return
	}

	log.Info("exam created", slog.String("exam_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"exam_id": id,
	}))
}
