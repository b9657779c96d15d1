// Package list реализует HTTP-обработчик выдачи каталога экзаменов.
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

// Handler обрабатывает HTTP-запросы списка экзаменов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка экзаменов.
type Service interface {
	ListExams(ctx context.Context) ([]*models.Exam, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог экзаменов
// @Description Возвращает все экзамены, новые первыми.
// @Tags Exams
// @Produce  json
// @Success 200 {object} map[string]any "Список экзаменов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /exams [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.exam.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	exams, err := h.service.ListExams(r.Context())
	if err != nil {
		log.Error("failed to list exams", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list exams"))
		return
	}

	log.Info("exams listed", slog.Int("count", len(exams)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"exams": exams,
	}))
}
