// Package apply реализует HTTP-обработчик погашения реферального кода.
//
// Handler принимает код и идентификатор подписки, извлекает текущего
// пользователя из контекста и делегирует погашение сервису. Ошибки сервиса
// транслируются в понятные клиенту статусы: повторное погашение и пустые
// поля — 400, неизвестный код или подписка — 404.
package apply

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/examprephub/examprep-backend/internal/http/middlewarectx"
	"github.com/examprephub/examprep-backend/internal/http/response"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/services/referral"
)

// Request — структура входных данных для погашения кода.
type Request struct {
	ReferralCode   string `json:"referral_code" validate:"required"`
	SubscriptionID string `json:"subscription_id" validate:"required"`
}

// Handler обрабатывает HTTP-запросы погашения реферальных кодов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики рефералов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики погашения кода.
type Service interface {
	Apply(ctx context.Context, currentUserUID, referralCode, subscriptionID string) error
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
// @Summary Погасить реферальный код
// @Description Продлевает подписку текущего пользователя и награждает владельца кода. Код можно погасить только один раз.
// @Tags Referral
// @Accept  json
// @Produce  json
// @Param request body Request true "Код и подписка для продления"
// @Success 200 {object} map[string]any "Код погашен"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или код уже погашен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Код или подписка не найдены"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /referral/apply [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.referral.apply"
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
	log.Info("request body decoded", slog.String("subscription_id", req.SubscriptionID))

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

	err := h.service.Apply(r.Context(), principal.UserUID, req.ReferralCode, req.SubscriptionID)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to apply referral code", sl.Err(err))
		} else {
			log.Info("referral code rejected", slog.String("reason", msg))
		}
		w.WriteHeader(status)
		render.JSON(w, r, response.Error(msg))
		return
	}

	log.Info("referral code applied", slog.String("user_uid", principal.UserUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"applied": true,
	}))
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, referral.ErrInvalidInput):
		return http.StatusBadRequest, "referral code and subscription id are required"
	case errors.Is(err, referral.ErrAlreadyRedeemed):
		return http.StatusBadRequest, "referral code already used"
	case errors.Is(err, referral.ErrSelfReferral):
		return http.StatusBadRequest, "cannot redeem own referral code"
	case errors.Is(err, referral.ErrCodeNotFound):
		return http.StatusNotFound, "invalid referral code"
	case errors.Is(err, referral.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, referral.ErrSubscriptionNotFound):
		return http.StatusNotFound, "subscription not found"
	default:
		return http.StatusInternalServerError, "could not apply referral code"
	}
}
