package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/examprephub/examprep-backend/internal/migrations"
	"github.com/examprephub/examprep-backend/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(dsn)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "failed to run migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, s *Storage, username, refcode string) string {
	t.Helper()
	uid, err := s.RegisterUser(context.Background(), models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
		ReferralCode: refcode,
	})
	require.NoError(t, err)
	return uid
}

func TestStorage_Users(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	uid := createTestUser(t, storage, "arjun", "ab2cd3ef")

	t.Run("пользователь находится по username", func(t *testing.T) {
		user, err := storage.GetUserByUsername(ctx, "arjun")
		require.NoError(t, err)
		assert.Equal(t, uid, user.UID)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Nil(t, user.ReferredBy)
		assert.Zero(t, user.ReferralRewards)
	})

	t.Run("реферальный код хранится в верхнем регистре и ищется без учёта регистра", func(t *testing.T) {
		user, err := storage.GetUserByReferralCode(ctx, "ab2cd3ef")
		require.NoError(t, err)
		assert.Equal(t, uid, user.UID)
		assert.Equal(t, "AB2CD3EF", user.ReferralCode)
	})

	t.Run("неизвестный код даёт ErrReferralCodeNotFound", func(t *testing.T) {
		_, err := storage.GetUserByReferralCode(ctx, "NOSUCHCD")
		require.ErrorIs(t, err, ErrReferralCodeNotFound)
	})

	t.Run("неизвестный пользователь даёт ErrUserNotFound", func(t *testing.T) {
		_, err := storage.GetUserByUsername(ctx, "ghost")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("referred_by пишется только один раз", func(t *testing.T) {
		referrerUID := createTestUser(t, storage, "priya", "XY7ZW8QR")

		require.NoError(t, storage.SetReferredBy(ctx, uid, referrerUID))

		user, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		require.NotNil(t, user.ReferredBy)
		assert.Equal(t, referrerUID, *user.ReferredBy)

		err = storage.SetReferredBy(ctx, uid, referrerUID)
		require.ErrorIs(t, err, ErrAlreadyRedeemed)
	})

	t.Run("счётчик наград увеличивается", func(t *testing.T) {
		require.NoError(t, storage.IncrementReferralRewards(ctx, uid))
		require.NoError(t, storage.IncrementReferralRewards(ctx, uid))

		user, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, 2, user.ReferralRewards)
	})
}

func TestStorage_Subscriptions(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	uid := createTestUser(t, storage, "kiran", "QR4ST5UV")

	newSub := func(subType string, status models.SubscriptionStatus, end time.Time) models.Subscription {
		return models.Subscription{
			UserUID:    uid,
			Type:       subType,
			Status:     status,
			StartDate:  now.AddDate(0, -1, 0),
			EndDate:    end,
			Plan:       "quarterly",
			Price:      499,
			PaymentRef: "PAY_" + uuid.NewString(),
		}
	}

	cptID, err := storage.CreateSubscription(ctx, newSub("cpt", models.SubscriptionActive, now.AddDate(0, 1, 0)))
	require.NoError(t, err)
	_, err = storage.CreateSubscription(ctx, newSub("dca", models.SubscriptionActive, now.AddDate(0, 0, -1)))
	require.NoError(t, err)

	t.Run("действующая подписка находится по типу", func(t *testing.T) {
		sub, err := storage.FindActiveSubscription(ctx, uid, "cpt", now)
		require.NoError(t, err)
		assert.Equal(t, cptID, sub.ID)
		assert.True(t, sub.ActiveAt(now))
	})

	t.Run("истёкшая подписка не считается действующей", func(t *testing.T) {
		_, err := storage.FindActiveSubscription(ctx, uid, "dca", now)
		require.ErrorIs(t, err, ErrSubscriptionNotFound)
	})

	t.Run("подписка другого типа не подходит", func(t *testing.T) {
		_, err := storage.FindActiveSubscription(ctx, uid, "typing", now)
		require.ErrorIs(t, err, ErrSubscriptionNotFound)
	})

	t.Run("любая действующая подписка открывает банк вопросов", func(t *testing.T) {
		sub, err := storage.FindAnyActiveSubscription(ctx, uid, now)
		require.NoError(t, err)
		assert.Equal(t, cptID, sub.ID)
	})

	t.Run("продление сдвигает дату окончания", func(t *testing.T) {
		newEnd := now.AddDate(0, 2, 0).Truncate(time.Second)
		require.NoError(t, storage.ExtendSubscription(ctx, cptID, newEnd))

		sub, err := storage.GetSubscription(ctx, cptID)
		require.NoError(t, err)
		assert.WithinDuration(t, newEnd, sub.EndDate, time.Second)
	})

	t.Run("продление несуществующей подписки даёт ErrSubscriptionNotFound", func(t *testing.T) {
		err := storage.ExtendSubscription(ctx, uuid.NewString(), now.AddDate(0, 1, 0))
		require.ErrorIs(t, err, ErrSubscriptionNotFound)
	})

	t.Run("просроченные активные подписки помечаются expired", func(t *testing.T) {
		count, err := storage.MarkExpiredSubscriptions(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		subs, err := storage.ListSubscriptions(ctx, uid)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		for _, sub := range subs {
			if sub.Type == "dca" {
				assert.Equal(t, models.SubscriptionExpired, sub.Status)
			}
		}

		// Повторный прогон ничего не трогает
		count, err = storage.MarkExpiredSubscriptions(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestStorage_Results(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	uid := createTestUser(t, storage, "meena", "GH6JK7MN")

	for i := range 3 {
		_, err := storage.CreateResult(ctx, models.Result{
			UserUID:        uid,
			ExamID:         uuid.NewString(),
			ExamTitle:      fmt.Sprintf("CPT Mock %d", i+1),
			ExamType:       "cpt",
			TotalQuestions: 20,
			TotalAnswered:  20,
			TotalCorrect:   15 + i,
			TotalIncorrect: 5 - i,
			TotalScore:     float64(15 + i),
			Percentage:     float64((15 + i) * 5),
			TimeTaken:      600,
			SubmittedAt:    time.Now().UTC().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	t.Run("история возвращается от новых к старым и режется лимитом", func(t *testing.T) {
		results, err := storage.ListResults(ctx, uid, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "CPT Mock 3", results[0].ExamTitle)
		assert.Equal(t, "CPT Mock 2", results[1].ExamTitle)
	})

	t.Run("чужая история пуста", func(t *testing.T) {
		otherUID := createTestUser(t, storage, "ravi", "ZX8CV9BN")
		results, err := storage.ListResults(ctx, otherUID, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
