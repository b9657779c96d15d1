package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/examprephub/examprep-backend/internal/models"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID              string      `json:"user_uid"` // UID пользователя
	Role                 models.Role `json:"role"`     // Роль пользователя
	jwt.RegisteredClaims             // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает JWT токен с заданными userUID и role, подписывая его
// секретным ключом. Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(userUID string, role models.Role) (string, error) {
	claims := CustomClaims{
		UserUID: userUID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия,
// возвращает CustomClaims с данными, если токен корректен. Любая ошибка —
// истёкший токен, чужая подпись, другой алгоритм — означает, что запрос
// не аутентифицирован.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%s: unknown role in claims", op)
	}
	return claims, nil
}
