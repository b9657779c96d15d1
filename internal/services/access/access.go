// Package access реализует проверку доступа к контенту платформы.
//
// Решение принимается по строгому приоритету: администратор — всегда доступ,
// бесплатный контент — доступ всем аутентифицированным, дальше ищется
// действующая подписка-джокер ("all") и только потом подписка на конкретную
// категорию. Отказ — это нормальный исход, а не ошибка: клиент получает
// адрес перехода к покупке. Ошибка возвращается только при сбое хранилища
// и никогда не трактуется как отказ в доступе.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

// DefaultRedirectTemplate шаблон адреса перехода к покупке. Подставляются
// категория контента и идентификатор элемента.
const DefaultRedirectTemplate = "/payment-app?type=%s&itemId=%s"

// Reason причина решения о доступе.
type Reason string

const (
	// ReasonAdmin доступ выдан по роли администратора.
	ReasonAdmin Reason = "admin"
	// ReasonFree контент помечен как бесплатный.
	ReasonFree Reason = "free"
	// ReasonSubscription доступ выдан по действующей подписке.
	ReasonSubscription Reason = "subscription"
	// ReasonNoSubscription действующей подписки нет.
	ReasonNoSubscription Reason = "no_subscription"
)

// ContentRequest описывает запрошенный контент. Не сохраняется, живёт в
// рамках одного запроса.
type ContentRequest struct {
	Type   string // Категория контента
	IsFree bool   // Флаг бесплатности на самом элементе
	ItemID string // Идентификатор элемента, нужен только для адреса перехода
}

// Decision результат проверки доступа.
type Decision struct {
	Granted      bool
	Reason       Reason
	Subscription *models.SubscriptionInfo // Заполнено при доступе по подписке
	RedirectTo   string                   // Заполнено при отказе
}

// SubscriptionRepository определяет методы для поиска подписок в хранилище.
type SubscriptionRepository interface {
	// FindActiveSubscription возвращает действующую подписку пользователя
	// заданного типа либо repository.ErrSubscriptionNotFound.
	FindActiveSubscription(ctx context.Context, userUID, subType string, now time.Time) (*models.Subscription, error)
}

var decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "examprep_access_decisions_total",
	Help: "Access decisions by reason.",
}, []string{"reason"})

// Resolver реализует проверку доступа к контенту.
type Resolver struct {
	subs             SubscriptionRepository
	log              *slog.Logger
	redirectTemplate string
}

// NewResolver создает новый Resolver. Пустой redirectTemplate заменяется
// шаблоном по умолчанию.
func NewResolver(subs SubscriptionRepository, log *slog.Logger, redirectTemplate string) *Resolver {
	if redirectTemplate == "" {
		redirectTemplate = DefaultRedirectTemplate
	}
	return &Resolver{
		subs:             subs,
		log:              log,
		redirectTemplate: redirectTemplate,
	}
}

// Resolve принимает решение о доступе principal к запрошенному контенту
// в момент now. Срок подписки сверяется строго с моментом запроса
// (end_date > now) и никогда не кешируется.
func (r *Resolver) Resolve(ctx context.Context, principal models.Principal, req ContentRequest, now time.Time) (*Decision, error) {
	const op = "access.Resolve"

	if principal.Role == models.RoleAdmin {
		decisionsTotal.WithLabelValues(string(ReasonAdmin)).Inc()
		return &Decision{Granted: true, Reason: ReasonAdmin}, nil
	}

	if req.IsFree {
		decisionsTotal.WithLabelValues(string(ReasonFree)).Inc()
		return &Decision{Granted: true, Reason: ReasonFree}, nil
	}

	// Сначала джокер: единый тариф закрывает любую категорию, и в типичном
	// случае второй запрос к хранилищу не нужен.
	for _, subType := range []string{models.SubscriptionTypeAll, req.Type} {
		sub, err := r.subs.FindActiveSubscription(ctx, principal.UserUID, subType, now)
		if err != nil {
			if errors.Is(err, repository.ErrSubscriptionNotFound) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		decisionsTotal.WithLabelValues(string(ReasonSubscription)).Inc()
		return &Decision{
			Granted: true,
			Reason:  ReasonSubscription,
			Subscription: &models.SubscriptionInfo{
				Plan:    sub.Plan,
				Type:    sub.Type,
				EndDate: sub.EndDate,
			},
		}, nil
	}

	r.log.Info("access denied, no active subscription",
		slog.String("user_uid", principal.UserUID),
		slog.String("content_type", req.Type))
	decisionsTotal.WithLabelValues(string(ReasonNoSubscription)).Inc()
	return &Decision{
		Granted:    false,
		Reason:     ReasonNoSubscription,
		RedirectTo: fmt.Sprintf(r.redirectTemplate, req.Type, req.ItemID),
	}, nil
}
