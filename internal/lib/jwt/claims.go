// Package jwt реализует генерацию и проверку сессионных JWT токенов.
//
// Maker определяет интерфейс для создания и проверки токенов с UID
// пользователя и его ролью. MakerImpl — конкретная реализация с секретным
// ключом и сроком жизни, задаваемыми один раз при конструировании.
package jwt

import (
	"time"

	"github.com/examprephub/examprep-backend/internal/models"
)

// Maker описывает интерфейс для генерации и проверки JWT токенов.
type Maker interface {
	// GenerateToken создает токен с UID пользователя и ролью.
	GenerateToken(userUID string, role models.Role) (string, error)
	// ParseToken проверяет подпись и возвращает *CustomClaims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL). Ключ передаётся при создании и после
// этого не меняется.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
