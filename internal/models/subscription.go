package models

import "time"

// SubscriptionTypeAll подписка-джокер: открывает все категории контента.
// Проверяется раньше типовых подписок, чтобы единый тариф закрывал любую
// категорию без дублирования записей.
const SubscriptionTypeAll = "all"

// SubscriptionStatus статус подписки.
type SubscriptionStatus string

const (
	// SubscriptionActive действующая подписка.
	SubscriptionActive SubscriptionStatus = "active"
	// SubscriptionCancelled отменённая подписка.
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	// SubscriptionExpired истёкшая подписка.
	SubscriptionExpired SubscriptionStatus = "expired"
)

// Subscription представляет оплаченный (или подарочный) доступ пользователя
// к категории контента. Подписка даёт доступ в момент t, только если
// Status == active и EndDate строго позже t.
type Subscription struct {
	ID         string             // Уникальный идентификатор
	UserUID    string             // Владелец подписки
	Type       string             // Категория контента либо "all"
	Status     SubscriptionStatus // Текущий статус
	StartDate  time.Time          // Дата начала действия
	EndDate    time.Time          // Дата окончания действия
	Plan       string             // Название тарифа
	Price      int                // Цена в рупиях, 0 для наградных подписок
	PaymentRef string             // Ссылка на платёж (уникальная)
}

// ActiveAt сообщает, даёт ли подписка доступ в момент t.
func (s *Subscription) ActiveAt(t time.Time) bool {
	return s.Status == SubscriptionActive && s.EndDate.After(t)
}

// SubscriptionInfo краткие данные действующей подписки, возвращаемые
// клиенту при успешной проверке доступа.
type SubscriptionInfo struct {
	Plan    string    `json:"plan"`
	Type    string    `json:"type"`
	EndDate time.Time `json:"end_date"`
}

// ExpiringSubscription данные для уведомления об истекающей подписке.
type ExpiringSubscription struct {
	Email    string
	Username string
	Type     string
	Plan     string
	EndDate  time.Time
}
