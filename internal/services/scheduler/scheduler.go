// Package scheduler содержит фоновые задачи обслуживания подписок:
// публикацию уведомлений об истекающих подписках и перевод просроченных
// подписок в статус expired.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/rabbitmq"
)

const (
	notifyInterval = 12 * time.Hour
	sweepInterval  = 24 * time.Hour

	notificationsExchange = "notifications"
	expiringRoutingKey    = "expiring"
)

// SubscriptionRepository определяет методы хранилища, нужные фоновым задачам.
type SubscriptionRepository interface {
	FindSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringSubscription, error)
	MarkExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error)
}

// SchedulerService запускает периодические задачи обслуживания подписок.
type SchedulerService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SubscriptionRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// NotifyExpiringSubscriptions раз в notifyInterval публикует в брокер
// уведомления о подписках, истекающих завтра. Первый проход выполняется
// сразу при запуске. Блокируется до отмены контекста.
func (s *SchedulerService) NotifyExpiringSubscriptions(ctx context.Context, channel rabbitmq.Channel) {
	s.runNotifyExpiringSubscriptions(ctx, channel)

	ticker := time.NewTicker(notifyInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runNotifyExpiringSubscriptions(ctx, channel)
		}
	}
}

func (s *SchedulerService) runNotifyExpiringSubscriptions(ctx context.Context, channel rabbitmq.Channel) {
	s.log.Info("starting service to find expiring subscriptions due tomorrow")
	expiring, err := s.repo.FindSubscriptionsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find expiring subscriptions", sl.Err(err))
		return
	}
	if len(expiring) == 0 {
		s.log.Info("no expiring subscriptions found")
		return
	}
	s.log.Info("found expiring subscriptions", "count", len(expiring))
	for _, item := range expiring {
		err = rabbitmq.PublishMessage(channel, notificationsExchange, expiringRoutingKey, item)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// SweepExpiredSubscriptions раз в sweepInterval помечает просроченные
// подписки статусом expired. Первый проход выполняется сразу при запуске.
// Блокируется до отмены контекста.
func (s *SchedulerService) SweepExpiredSubscriptions(ctx context.Context) {
	s.runSweepExpiredSubscriptions(ctx)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSweepExpiredSubscriptions(ctx)
		}
	}
}

func (s *SchedulerService) runSweepExpiredSubscriptions(ctx context.Context) {
	s.log.Info("starting service to mark expired subscriptions")
	count, err := s.repo.MarkExpiredSubscriptions(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("failed to mark expired subscriptions", sl.Err(err))
		return
	}
	if count == 0 {
		s.log.Info("no expired subscriptions found")
		return
	}
	s.log.Info("marked expired subscriptions", "count", count)
}
