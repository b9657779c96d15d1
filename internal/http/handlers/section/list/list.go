// Package list реализует HTTP-обработчик выдачи разделов курса.
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

// Handler обрабатывает HTTP-запросы списка разделов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка разделов.
type Service interface {
	ListSections(ctx context.Context) ([]*models.Section, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Разделы курса
// @Description Возвращает разделы курса в порядке следования.
// @Tags Sections
// @Produce  json
// @Success 200 {object} map[string]any "Список разделов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /sections [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.section.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sections, err := h.service.ListSections(r.Context())
	if err != nil {
		log.Error("failed to list sections", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list sections"))
		return
	}

	log.Info("sections listed", slog.Int("count", len(sections)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"sections": sections,
	}))
}
