// Package create реализует HTTP-обработчик добавления вопроса в банк темы.
// Доступен только администратору.
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

// Handler обрабатывает HTTP-запросы добавления вопросов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления вопроса.
type Service interface {
	CreateQuestion(ctx context.Context, dummy models.DummyQuestion) (string, error)
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
// @Summary Добавить вопрос
// @Description Добавляет вопрос в банк темы. Только для администратора.
// @Tags Questions
// @Accept  json
// @Produce  json
// @Param request body models.DummyQuestion true "Данные нового вопроса"
// @Success 200 {object} map[string]any "Вопрос создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /topicwise/questions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyQuestion
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("topic_id", req.TopicID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	// Индекс правильного ответа должен указывать на существующий вариант.
	if req.CorrectIndex >= len(req.Options) {
		log.Error("correct index out of range",
			slog.Int("correct_index", req.CorrectIndex),
			slog.Int("options", len(req.Options)))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("correct_index out of range"))
		return
	}

	id, err := h.service.CreateQuestion(r.Context(), req)
	if err != nil {
		log.Error("failed to create question", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create question"))
		return
	}

	log.Info("question created",
		slog.String("question_id", id),
		slog.String("topic_id", req.TopicID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"question_id": id,
	}))
}
