// Package subscription реализует выдачу подписок пользователя для личного
// кабинета. Решения о доступе принимает пакет access, здесь только списки.
package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/examprephub/examprep-backend/internal/models"
)

// Repository определяет методы хранилища подписок.
type Repository interface {
	ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error)
}

// Service реализует бизнес-логику списка подписок.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// List возвращает все подписки пользователя, включая истёкшие и отменённые,
// свежие первыми.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "subscription.List"
	subs, err := s.repo.ListSubscriptions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}
