// Package models содержит доменные модели платформы подготовки к экзаменам:
// пользователей, подписки, реферальные записи и учебный контент.
package models

import "time"

// Role роль пользователя. Закрытый набор значений, чтобы опечатка в строке
// не могла незаметно выдать или отнять доступ.
type Role string

const (
	// RoleUser обычный пользователь.
	RoleUser Role = "user"
	// RoleAdmin администратор, имеет доступ ко всему контенту и CRUD-операциям.
	RoleAdmin Role = "admin"
)

// Valid проверяет, что роль принадлежит закрытому набору.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// User представляет зарегистрированного пользователя платформы.
type User struct {
	UID             string     // Уникальный идентификатор пользователя
	Email           string     // Электронная почта
	Username        string     // Имя пользователя (уникальное)
	PasswordHash    string     // Хэш пароля пользователя
	Role            Role       // Роль пользователя, admin или user
	ReferralCode    string     // Собственный реферальный код (верхний регистр, уникальный)
	ReferredBy      *string    // UID пригласившего пользователя, ставится один раз
	ReferralRewards int        // Сколько раз код пользователя был погашен
	CreatedAt       *time.Time // Дата регистрации
}

// Principal идентичность запроса, извлечённая из проверенного токена.
// Живёт в рамках одного запроса и никогда не сохраняется.
type Principal struct {
	UserUID string
	Role    Role
}
