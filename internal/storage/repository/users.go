package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/examprephub/examprep-backend/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, username, password_hash, role, referral_code)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role,
		strings.ToUpper(user.ReferralCode)).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, referral_code,
			      referred_by, referral_rewards, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, referral_code,
			      referred_by, referral_rewards, created_at
			  FROM users
			  WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUserByReferralCode возвращает владельца реферального кода. Код хранится
// в верхнем регистре, входное значение приводится к канонической форме.
func (s *Storage) GetUserByReferralCode(ctx context.Context, code string) (*models.User, error) {
	const op = "storage.GetUserByReferralCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, referral_code,
			      referred_by, referral_rewards, created_at
			  FROM users
			  WHERE referral_code = $1`
	u, err := s.scanUser(s.DB.QueryRowContext(ctx, query, strings.ToUpper(code)), op)
	if errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrReferralCodeNotFound)
	}
	return u, err
}

// SetReferredBy устанавливает referred_by пользователя. Поле пишется один
// раз: обновление условное (WHERE referred_by IS NULL), и если строка не
// изменилась — значит код уже был погашен, возвращается ErrAlreadyRedeemed.
func (s *Storage) SetReferredBy(ctx context.Context, userUID, referrerUID string) error {
	const op = "storage.SetReferredBy"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET referred_by = $1
			  WHERE uid = $2 AND referred_by IS NULL`
	result, err := s.DB.ExecContext(ctx, query, referrerUID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrAlreadyRedeemed)
	}
	return nil
}

// IncrementReferralRewards увеличивает счётчик наград пользователя на 1.
func (s *Storage) IncrementReferralRewards(ctx context.Context, userUID string) error {
	const op = "storage.IncrementReferralRewards"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET referral_rewards = referral_rewards + 1
			  WHERE uid = $1`
	_, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var referredBy sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &u.ReferralCode, &referredBy, &u.ReferralRewards, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if referredBy.Valid {
		u.ReferredBy = &referredBy.String
	}
	if createdAt.Valid {
		u.CreatedAt = &createdAt.Time
	}
	return u, nil
}
