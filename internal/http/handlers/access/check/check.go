// Package check реализует HTTP-обработчик проверки доступа к контенту.
//
// Handler принимает категорию контента, флаг бесплатности и идентификатор
// элемента, извлекает идентичность из контекста и возвращает решение
// резолвера: доступ с причиной либо отказ с адресом перехода к покупке.
// Отказ в доступе — это ответ 200 с hasAccess=false, а не ошибка HTTP.
package check

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/examprephub/examprep-backend/internal/http/middlewarectx"
	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/services/access"
)

// Request — структура входных данных для проверки доступа.
type Request struct {
	Type   string `json:"type" validate:"required"`
	IsFree bool   `json:"is_free"`
	ItemID string `json:"item_id"`
}

// Handler обрабатывает HTTP-запросы проверки доступа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Резолвер доступа
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс резолвера доступа.
type Service interface {
	Resolve(ctx context.Context, principal models.Principal, req access.ContentRequest, now time.Time) (*access.Decision, error)
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
// @Summary Проверить доступ к контенту
// @Description Возвращает решение о доступе текущего пользователя к элементу контента. При отказе в данных присутствует адрес перехода к покупке.
// @Tags Access
// @Accept  json
// @Produce  json
// @Param request body Request true "Запрошенный контент"
// @Success 200 {object} map[string]any "Решение о доступе"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 503 {object} response.ErrorResponse "Хранилище подписок недоступно"
// @Router /access/check [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.check"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	decision, err := h.service.Resolve(r.Context(), principal, access.ContentRequest{
		Type:   req.Type,
		IsFree: req.IsFree,
		ItemID: req.ItemID,
	}, time.Now().UTC())
	if err != nil {
		// Сбой хранилища не трактуется как отказ в доступе.
		log.Error("failed to resolve access", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("access check unavailable"))
		return
	}

	data := map[string]any{
		"hasAccess": decision.Granted,
		"reason":    decision.Reason,
	}
	if decision.Subscription != nil {
		data["subscription"] = decision.Subscription
	}
	if decision.RedirectTo != "" {
		data["redirectTo"] = decision.RedirectTo
	}

	log.Info("access resolved",
		slog.Bool("has_access", decision.Granted),
		slog.String("reason", string(decision.Reason)))
	render.JSON(w, r, response.OKWithData(data))
}
