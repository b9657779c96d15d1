// Package auth реализует регистрацию, вход и проверку сессионных токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/examprephub/examprep-backend/internal/lib/jwt"
	"github.com/examprephub/examprep-backend/internal/lib/password"
	"github.com/examprephub/examprep-backend/internal/lib/refcode"
	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

var (
	// ErrInvalidCredentials пользователь не найден или пароль не подошёл.
	// Наружу причины не различаются, чтобы не раскрывать существование логина.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken токен отсутствует, просрочен или не прошёл проверку.
	ErrInvalidToken = errors.New("invalid token")
)

// UserRepository определяет методы работы с пользователями.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service реализует бизнес-логику аутентификации.
type Service struct {
	users UserRepository
	maker jwt.Maker
	log   *slog.Logger
}

// New создает новый Service.
func New(users UserRepository, maker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users: users,
		maker: maker,
		log:   log,
	}
}

// Register регистрирует нового пользователя с ролью user и собственным
// реферальным кодом. Возвращает UID созданного пользователя.
func (s *Service) Register(ctx context.Context, email, username, plainPassword string) (string, error) {
	const op = "auth.Register"

	hash, err := password.GetHash(plainPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	code, err := refcode.Generate()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	uid, err := s.users.RegisterUser(ctx, models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleUser,
		ReferralCode: code,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered",
		slog.String("user_uid", uid),
		slog.String("username", username))
	return uid, nil
}

// Login проверяет учётные данные и возвращает подписанный сессионный токен.
func (s *Service) Login(ctx context.Context, username, plainPassword string) (string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, plainPassword); err != nil {
		s.log.Warn("login failed, password mismatch", slog.String("username", username))
		return "", ErrInvalidCredentials
	}

	token, err := s.maker.GenerateToken(user.UID, user.Role)
	if err != nil {
		s.log.Error("failed to generate token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateToken проверяет токен и возвращает идентичность запроса.
// Любой дефект токена (подпись, срок, неизвестная роль) сворачивается в
// ErrInvalidToken: клиенту не сообщается, что именно не так.
func (s *Service) ValidateToken(tokenStr string) (*models.Principal, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.maker.ParseToken(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &models.Principal{
		UserUID: claims.UserUID,
		Role:    claims.Role,
	}, nil
}
