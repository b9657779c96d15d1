package models

import "time"

// ReferralStatus статус реферальной записи.
type ReferralStatus string

const (
	// ReferralCompleted погашение обработано, награды начислены.
	ReferralCompleted ReferralStatus = "completed"
)

// Referral аудит-запись о погашении реферального кода. Создаётся ровно один
// раз на успешное погашение и после этого не изменяется.
type Referral struct {
	ID                   string         // Уникальный идентификатор
	ReferrerUID          string         // Кто пригласил
	ReferredUserUID      string         // Кто погасил код
	ReferralCode         string         // Код в каноническом (верхнем) регистре
	Status               ReferralStatus // Статус записи
	ReferrerRewardMonths int            // Награда пригласившему, месяцев
	ReferredRewardMonths int            // Награда приглашённому, месяцев
	SubscriptionID       string         // Подписка, к которой применили код
	CreatedAt            time.Time      // Момент погашения
}
