package repository

import (
	"context"
	"fmt"

	"github.com/examprephub/examprep-backend/internal/models"
)

// CreateReferral вставляет аудит-запись о погашении реферального кода
// и возвращает её ID. Запись после создания не изменяется.
func (s *Storage) CreateReferral(ctx context.Context, ref models.Referral) (string, error) {
	const op = "storage.CreateReferral"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO referrals (referrer_uid, referred_user_uid, referral_code,
			      status, referrer_reward_months, referred_reward_months, subscription_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		ref.ReferrerUID, ref.ReferredUserUID, ref.ReferralCode, ref.Status,
		ref.ReferrerRewardMonths, ref.ReferredRewardMonths, ref.SubscriptionID).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReferralsByReferrer возвращает записи о погашениях кода пользователя.
func (s *Storage) ListReferralsByReferrer(ctx context.Context, referrerUID string) ([]*models.Referral, error) {
	const op = "storage.ListReferralsByReferrer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, referrer_uid, referred_user_uid, referral_code, status,
			      referrer_reward_months, referred_reward_months, subscription_id, created_at
			  FROM referrals
			  WHERE referrer_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, referrerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Referral
	for rows.Next() {
		var item models.Referral
		if err := rows.Scan(&item.ID, &item.ReferrerUID, &item.ReferredUserUID,
			&item.ReferralCode, &item.Status, &item.ReferrerRewardMonths,
			&item.ReferredRewardMonths, &item.SubscriptionID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
