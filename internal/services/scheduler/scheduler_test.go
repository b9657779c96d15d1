package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/examprephub/examprep-backend/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringSubscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpiringSubscription), args.Error(1)
}

func (m *MockRepository) MarkExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSchedulerService_runNotifyExpiringSubscriptions(t *testing.T) {
	expiring := &models.ExpiringSubscription{
		Email:    "test@example.com",
		Username: "testuser",
		Type:     "examA",
		Plan:     "yearly",
		EndDate:  time.Now().Add(24 * time.Hour),
	}

	tests := []struct {
		name       string
		setupMocks func(*MockRepository, *MockChannel)
	}{
		{
			name: "найденные подписки публикуются в брокер",
			setupMocks: func(r *MockRepository, ch *MockChannel) {
				r.On("FindSubscriptionsExpiringTomorrow", mock.Anything).
					Return([]*models.ExpiringSubscription{expiring}, nil).Once()
				ch.On("Publish", "notifications", "expiring", false, false,
					mock.AnythingOfType("amqp.Publishing")).Return(nil).Once()
			},
		},
		{
			name: "нечего публиковать",
			setupMocks: func(r *MockRepository, _ *MockChannel) {
				r.On("FindSubscriptionsExpiringTomorrow", mock.Anything).
					Return([]*models.ExpiringSubscription{}, nil).Once()
			},
		},
		{
			name: "ошибка хранилища только логируется",
			setupMocks: func(r *MockRepository, _ *MockChannel) {
				r.On("FindSubscriptionsExpiringTomorrow", mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
		},
		{
			name: "ошибка публикации не прерывает рассылку",
			setupMocks: func(r *MockRepository, ch *MockChannel) {
				r.On("FindSubscriptionsExpiringTomorrow", mock.Anything).
					Return([]*models.ExpiringSubscription{expiring, expiring}, nil).Once()
				ch.On("Publish", "notifications", "expiring", false, false,
					mock.AnythingOfType("amqp.Publishing")).Return(errors.New("broker down")).Twice()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			channel := new(MockChannel)
			service := NewSchedulerService(repo, newNoopLogger())

			tt.setupMocks(repo, channel)

			service.runNotifyExpiringSubscriptions(context.Background(), channel)

			repo.AssertExpectations(t)
			channel.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_runSweepExpiredSubscriptions(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockRepository)
	}{
		{
			name: "просроченные подписки помечаются",
			setupMocks: func(r *MockRepository) {
				r.On("MarkExpiredSubscriptions", mock.Anything, mock.AnythingOfType("time.Time")).
					Return(int64(3), nil).Once()
			},
		},
		{
			name: "нечего помечать",
			setupMocks: func(r *MockRepository) {
				r.On("MarkExpiredSubscriptions", mock.Anything, mock.AnythingOfType("time.Time")).
					Return(int64(0), nil).Once()
			},
		},
		{
			name: "ошибка хранилища только логируется",
			setupMocks: func(r *MockRepository) {
				r.On("MarkExpiredSubscriptions", mock.Anything, mock.AnythingOfType("time.Time")).
					Return(int64(0), errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewSchedulerService(repo, newNoopLogger())

			tt.setupMocks(repo)

			service.runSweepExpiredSubscriptions(context.Background())

			repo.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_NewSchedulerService(t *testing.T) {
	repo := new(MockRepository)
	logger := newNoopLogger()

	service := NewSchedulerService(repo, logger)

	assert.NotNil(t, service)
	assert.Equal(t, repo, service.repo)
	assert.Equal(t, logger, service.log)
}
