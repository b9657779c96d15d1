package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/examprephub/examprep-backend/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, type, status, start_date, end_date,
			      plan, price, payment_ref)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.Type, sub.Status, sub.StartDate, sub.EndDate,
		sub.Plan, sub.Price, sub.PaymentRef).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSubscription возвращает подписку по её ID.
func (s *Storage) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, type, status, start_date, end_date, plan, price, payment_ref
			  FROM subscriptions
			  WHERE id = $1`
	return s.scanSubscription(s.DB.QueryRowContext(ctx, query, id), op)
}

// FindActiveSubscription возвращает действующую подписку пользователя
// заданного типа: status = active и end_date строго позже now. Если таких
// несколько, берётся с самой поздней датой окончания.
func (s *Storage) FindActiveSubscription(ctx context.Context, userUID, subType string, now time.Time) (*models.Subscription, error) {
	const op = "storage.FindActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, type, status, start_date, end_date, plan, price, payment_ref
			  FROM subscriptions
			  WHERE user_uid = $1
			    AND type = $2
			    AND status = 'active'
			    AND end_date > $3
			  ORDER BY end_date DESC
			  LIMIT 1`
	return s.scanSubscription(s.DB.QueryRowContext(ctx, query, userUID, subType, now), op)
}

// FindAnyActiveSubscription возвращает любую действующую подписку
// пользователя независимо от типа.
func (s *Storage) FindAnyActiveSubscription(ctx context.Context, userUID string, now time.Time) (*models.Subscription, error) {
	const op = "storage.FindAnyActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, type, status, start_date, end_date, plan, price, payment_ref
			  FROM subscriptions
			  WHERE user_uid = $1
			    AND status = 'active'
			    AND end_date > $2
			  ORDER BY end_date DESC
			  LIMIT 1`
	return s.scanSubscription(s.DB.QueryRowContext(ctx, query, userUID, now), op)
}

// ListSubscriptions возвращает все подписки пользователя, включая истёкшие.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, type, status, start_date, end_date, plan, price, payment_ref
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY end_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Type, &item.Status,
			&item.StartDate, &item.EndDate, &item.Plan, &item.Price, &item.PaymentRef); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ExtendSubscription обновляет дату окончания подписки.
func (s *Storage) ExtendSubscription(ctx context.Context, id string, newEndDate time.Time) error {
	const op = "storage.ExtendSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET end_date = $1
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, newEndDate, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	return nil
}

// FindSubscriptionsExpiringTomorrow находит подписки, истекающие завтра
func (s *Storage) FindSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringSubscription, error) {
	const op = "storage.FindSubscriptionsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
		          u.email,
			      u.username,
			      s.type,
			      s.plan,
			      s.end_date
			  FROM subscriptions s
		      JOIN users u ON s.user_uid = u.uid
		      WHERE s.status = 'active'
		        AND s.end_date::DATE = CURRENT_DATE + INTERVAL '1 day';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiringSubscription
	for rows.Next() {
		var si models.ExpiringSubscription
		if err = rows.Scan(&si.Email, &si.Username, &si.Type, &si.Plan, &si.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &si)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkExpiredSubscriptions переводит в статус expired все активные подписки,
// чья дата окончания уже прошла. Возвращает число обновлённых строк.
// Проверка доступа на статус не полагается и сверяет end_date сама, так что
// сдвиг запуска не даёт лишнего доступа, это чистка для списков и отчётов.
func (s *Storage) MarkExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.MarkExpiredSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = 'expired'
			  WHERE status = 'active'
			    AND end_date <= $1`
	result, err := s.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

func (s *Storage) scanSubscription(row *sql.Row, op string) (*models.Subscription, error) {
	var item models.Subscription
	if err := row.Scan(&item.ID, &item.UserUID, &item.Type, &item.Status,
		&item.StartDate, &item.EndDate, &item.Plan, &item.Price, &item.PaymentRef); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}
