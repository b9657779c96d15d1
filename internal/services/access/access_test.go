package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

type SubsRepoMock struct{ mock.Mock }

func (m *SubsRepoMock) FindActiveSubscription(ctx context.Context, userUID, subType string, now time.Time) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, subType, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func activeSub(subType string, endDate time.Time) *models.Subscription {
	return &models.Subscription{
		ID:      "sub-1",
		UserUID: "user-1",
		Type:    subType,
		Status:  models.SubscriptionActive,
		EndDate: endDate,
		Plan:    "yearly",
		Price:   999,
	}
}

func TestResolver_Resolve(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		principal  models.Principal
		req        ContentRequest
		setupMocks func(m *SubsRepoMock)
		want       func(t *testing.T, d *Decision)
		wantErr    bool
	}{
		{
			name:      "админ получает доступ без обращения к подпискам",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleAdmin},
			req:       ContentRequest{Type: "examA", IsFree: false, ItemID: "item-1"},
			setupMocks: func(_ *SubsRepoMock) {
				// FindActiveSubscription не должен вызываться вообще
			},
			want: func(t *testing.T, d *Decision) {
				assert.True(t, d.Granted)
				assert.Equal(t, ReasonAdmin, d.Reason)
			},
		},
		{
			name:      "бесплатный контент доступен без подписки",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleUser},
			req:       ContentRequest{Type: "examA", IsFree: true, ItemID: "item-1"},
			setupMocks: func(_ *SubsRepoMock) {},
			want: func(t *testing.T, d *Decision) {
				assert.True(t, d.Granted)
				assert.Equal(t, ReasonFree, d.Reason)
			},
		},
		{
			name:      "подписка all открывает любую категорию",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleUser},
			req:       ContentRequest{Type: "examB", IsFree: false, ItemID: "item-1"},
			setupMocks: func(m *SubsRepoMock) {
				m.On("FindActiveSubscription", mock.Anything, "user-1", models.SubscriptionTypeAll, now).
					Return(activeSub(models.SubscriptionTypeAll, now.AddDate(0, 0, 10)), nil).Once()
			},
			want: func(t *testing.T, d *Decision) {
				assert.True(t, d.Granted)
				assert.Equal(t, ReasonSubscription, d.Reason)
				require.NotNil(t, d.Subscription)
				assert.Equal(t, models.SubscriptionTypeAll, d.Subscription.Type)
				assert.Equal(t, "yearly", d.Subscription.Plan)
			},
		},
		{
			name:      "типовая подписка открывает свою категорию",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleUser},
			req:       ContentRequest{Type: "examA", IsFree: false, ItemID: "item-1"},
			setupMocks: func(m *SubsRepoMock) {
				m.On("FindActiveSubscription", mock.Anything, "user-1", models.SubscriptionTypeAll, now).
					Return(nil, repository.ErrSubscriptionNotFound).Once()
				m.On("FindActiveSubscription", mock.Anything, "user-1", "examA", now).
					Return(activeSub("examA", now.AddDate(0, 1, 0)), nil).Once()
			},
			want: func(t *testing.T, d *Decision) {
				assert.True(t, d.Granted)
				assert.Equal(t, ReasonSubscription, d.Reason)
				require.NotNil(t, d.Subscription)
				assert.Equal(t, "examA", d.Subscription.Type)
			},
		},
		{
			name:      "типовая подписка не открывает чужую категорию",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleUser},
			req:       ContentRequest{Type: "examB", IsFree: false, ItemID: "item-7"},
			setupMocks: func(m *SubsRepoMock) {
				m.On("FindActiveSubscription", mock.Anything, "user-1", models.SubscriptionTypeAll, now).
					Return(nil, repository.ErrSubscriptionNotFound).Once()
				m.On("FindActiveSubscription", mock.Anything, "user-1", "examB", now).
					Return(nil, repository.ErrSubscriptionNotFound).Once()
			},
			want: func(t *testing.T, d *Decision) {
				assert.False(t, d.Granted)
				assert.Equal(t, ReasonNoSubscription, d.Reason)
				assert.Equal(t, "/payment-app?type=examB&itemId=item-7", d.RedirectTo)
			},
		},
		{
			name:      "сбой хранилища это ошибка, а не отказ",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleUser},
			req:       ContentRequest{Type: "examA", IsFree: false, ItemID: "item-1"},
			setupMocks: func(m *SubsRepoMock) {
				m.On("FindActiveSubscription", mock.Anything, "user-1", models.SubscriptionTypeAll, now).
					Return(nil, errors.New("db connection lost")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(SubsRepoMock)
			tt.setupMocks(repoMock)

			resolver := NewResolver(repoMock, newNoopLogger(), "")
			decision, err := resolver.Resolve(context.Background(), tt.principal, tt.req, now)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, decision)
			} else {
				require.NoError(t, err)
				require.NotNil(t, decision)
				tt.want(t, decision)
			}

			repoMock.AssertExpectations(t)
		})
	}
}

func TestResolver_Resolve_ExpiryBoundary(t *testing.T) {
	// Подписка с end_date == now не действует: требуется строгое "позже".
	// Репозиторий сам применяет условие end_date > now, поэтому здесь
	// проверяется, что резолвер передаёт момент запроса без искажений.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repoMock := new(SubsRepoMock)
	repoMock.On("FindActiveSubscription", mock.Anything, "user-1", models.SubscriptionTypeAll, now).
		Return(nil, repository.ErrSubscriptionNotFound).Once()
	repoMock.On("FindActiveSubscription", mock.Anything, "user-1", "examA", now).
		Return(nil, repository.ErrSubscriptionNotFound).Once()

	resolver := NewResolver(repoMock, newNoopLogger(), "")
	decision, err := resolver.Resolve(context.Background(),
		models.Principal{UserUID: "user-1", Role: models.RoleUser},
		ContentRequest{Type: "examA", ItemID: "item-1"}, now)

	require.NoError(t, err)
	assert.False(t, decision.Granted)
	repoMock.AssertExpectations(t)
}
