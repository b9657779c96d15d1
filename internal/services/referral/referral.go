// Package referral реализует начисление наград за реферальные коды.
//
// Погашение кода — одноразовое и необратимое действие: поле referred_by
// пользователя пишется один раз условным обновлением на стороне хранилища,
// поэтому повторное или конкурентное погашение проваливает всю операцию.
// Награда считается от max(текущий конец, сейчас), чтобы истёкшее время
// не съедало подарочный период и чтобы далёкая дата окончания никогда
// не сдвигалась назад.
package referral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

const (
	// RewardPeriodDays длительность награды для обеих сторон.
	RewardPeriodDays = 30
	// RewardMonths награда в месяцах, фиксируется в аудит-записи.
	RewardMonths = 1
	// RewardPlan название тарифа наградной подписки пригласившего.
	RewardPlan = "referral_reward"
)

// Ошибки прикладного уровня. Проверки выполняются по порядку, первая
// непройденная останавливает операцию до каких-либо записей в хранилище.
var (
	// ErrInvalidInput код или идентификатор подписки не переданы.
	ErrInvalidInput = errors.New("referral code and subscription id are required")
	// ErrCodeNotFound владелец кода не найден.
	ErrCodeNotFound = errors.New("invalid referral code")
	// ErrUserNotFound текущий пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyRedeemed пользователь уже погасил чей-то код.
	ErrAlreadyRedeemed = errors.New("referral code already used")
	// ErrSubscriptionNotFound подписка для продления не найдена.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrSelfReferral пользователь пытается погасить собственный код.
	ErrSelfReferral = errors.New("cannot redeem own referral code")
)

// UserRepository определяет методы работы с пользователями.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*models.User, error)
	// SetReferredBy устанавливает referred_by один раз; если поле уже
	// занято, возвращает repository.ErrAlreadyRedeemed.
	SetReferredBy(ctx context.Context, userUID, referrerUID string) error
	IncrementReferralRewards(ctx context.Context, userUID string) error
}

// SubscriptionRepository определяет методы работы с подписками.
type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, id string) (*models.Subscription, error)
	FindActiveSubscription(ctx context.Context, userUID, subType string, now time.Time) (*models.Subscription, error)
	CreateSubscription(ctx context.Context, sub models.Subscription) (string, error)
	ExtendSubscription(ctx context.Context, id string, newEndDate time.Time) error
}

// ReferralRepository определяет методы работы с аудит-записями погашений.
type ReferralRepository interface {
	CreateReferral(ctx context.Context, ref models.Referral) (string, error)
	ListReferralsByReferrer(ctx context.Context, referrerUID string) ([]*models.Referral, error)
}

// Status сводка реферальной программы пользователя: его код, счётчик
// погашений и журнал записей, где он выступил пригласившим.
type Status struct {
	ReferralCode    string             `json:"referral_code"`
	ReferralRewards int                `json:"referral_rewards"`
	Redeemed        bool               `json:"redeemed"`
	Referrals       []*models.Referral `json:"referrals"`
}

// Service реализует бизнес-логику погашения реферальных кодов.
type Service struct {
	users UserRepository
	subs  SubscriptionRepository
	refs  ReferralRepository
	log   *slog.Logger
}

// New создает новый Service.
func New(users UserRepository, subs SubscriptionRepository, refs ReferralRepository, log *slog.Logger) *Service {
	return &Service{
		users: users,
		subs:  subs,
		refs:  refs,
		log:   log,
	}
}

// Apply погашает реферальный код пользователя currentUserUID, продлевая
// подписку subscriptionID и награждая владельца кода.
//
// Эффекты применяются в фиксированном порядке и не объединяются в одну
// транзакцию: при сбое посередине уже применённые продления остаются, а
// аудит-запись пишется последней, чтобы начисленное не терялось из журнала.
// Такой частичный сбой логируется отдельно.
func (s *Service) Apply(ctx context.Context, currentUserUID, referralCode, subscriptionID string) error {
	const op = "referral.Apply"

	if referralCode == "" || subscriptionID == "" {
		return ErrInvalidInput
	}

	referrer, err := s.users.GetUserByReferralCode(ctx, referralCode)
	if err != nil {
		if errors.Is(err, repository.ErrReferralCodeNotFound) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if referrer.UID == currentUserUID {
		return ErrSelfReferral
	}

	currentUser, err := s.users.GetUser(ctx, currentUserUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if currentUser.ReferredBy != nil {
		return ErrAlreadyRedeemed
	}

	sub, err := s.subs.GetSubscription(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return ErrSubscriptionNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	// 1. Продление подписки погасившего пользователя.
	if err := s.subs.ExtendSubscription(ctx, sub.ID, rewardEndDate(sub.EndDate, now)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// 2. Награда пригласившему: продление лучшей действующей подписки по
	// тому же приоритету джокер-потом-тип, либо новая наградная подписка.
	if err := s.rewardReferrer(ctx, referrer.UID, sub.Type, now); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// 3. Одноразовая отметка погашения. Проигрыш условного обновления
	// означает конкурентное погашение: операция завершается как повторная.
	if err := s.users.SetReferredBy(ctx, currentUser.UID, referrer.UID); err != nil {
		if errors.Is(err, repository.ErrAlreadyRedeemed) {
			s.log.Warn("concurrent redemption detected after extensions applied",
				slog.String("user_uid", currentUser.UID))
			return ErrAlreadyRedeemed
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	// 4. Аудит-запись — последней, чтобы применённые продления не
	// пропадали из журнала при сбое на этом шаге.
	ref := models.Referral{
		ReferrerUID:          referrer.UID,
		ReferredUserUID:      currentUser.UID,
		ReferralCode:         referrer.ReferralCode,
		Status:               models.ReferralCompleted,
		ReferrerRewardMonths: RewardMonths,
		ReferredRewardMonths: RewardMonths,
		SubscriptionID:       sub.ID,
	}
	if _, err := s.refs.CreateReferral(ctx, ref); err != nil {
		s.log.Error("rewards applied but referral record failed", sl.Err(err),
			slog.String("referrer_uid", referrer.UID),
			slog.String("referred_uid", currentUser.UID))
		return fmt.Errorf("%s: %w", op, err)
	}

	// 5. Счётчик наград пригласившего.
	if err := s.users.IncrementReferralRewards(ctx, referrer.UID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("referral applied",
		slog.String("referrer_uid", referrer.UID),
		slog.String("referred_uid", currentUser.UID),
		slog.String("subscription_id", sub.ID))
	return nil
}

// GetStatus возвращает сводку реферальной программы пользователя userUID.
func (s *Service) GetStatus(ctx context.Context, userUID string) (*Status, error) {
	const op = "referral.GetStatus"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	referrals, err := s.refs.ListReferralsByReferrer(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Status{
		ReferralCode:    user.ReferralCode,
		ReferralRewards: user.ReferralRewards,
		Redeemed:        user.ReferredBy != nil,
		Referrals:       referrals,
	}, nil
}

func (s *Service) rewardReferrer(ctx context.Context, referrerUID, subType string, now time.Time) error {
	for _, t := range []string{models.SubscriptionTypeAll, subType} {
		existing, err := s.subs.FindActiveSubscription(ctx, referrerUID, t, now)
		if err != nil {
			if errors.Is(err, repository.ErrSubscriptionNotFound) {
				continue
			}
			return err
		}
		return s.subs.ExtendSubscription(ctx, existing.ID, rewardEndDate(existing.EndDate, now))
	}

	// Действующей подписки нет: создаётся наградная, тип наследуется от
	// погашенной подписки (включая "all").
	_, err := s.subs.CreateSubscription(ctx, models.Subscription{
		UserUID:    referrerUID,
		Type:       subType,
		Status:     models.SubscriptionActive,
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, RewardPeriodDays),
		Plan:       RewardPlan,
		Price:      0,
		PaymentRef: "REF_" + uuid.NewString(),
	})
	return err
}

// rewardEndDate считает новую дату окончания: max(текущая, сейчас) + период.
// Истёкшая подписка получает полный период от текущего момента, действующая —
// полный период сверх оставшегося.
func rewardEndDate(currentEnd, now time.Time) time.Time {
	base := currentEnd
	if now.After(base) {
		base = now
	}
	return base.AddDate(0, 0, RewardPeriodDays)
}
