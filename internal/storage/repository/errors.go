// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, подписок, реферальных записей и учебного контента.
package repository

import "errors"

// Сигнальные ошибки хранилища. Верхние слои различают по ним «не найдено»
// и «хранилище недоступно»: любая другая ошибка репозитория означает сбой
// инфраструктуры и никогда не трактуется как отказ в доступе.
var (
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrSubscriptionNotFound подписка не найдена.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrReferralCodeNotFound реферальный код не найден.
	ErrReferralCodeNotFound = errors.New("referral code not found")
	// ErrAlreadyRedeemed пользователь уже погасил реферальный код.
	// Возвращается условным обновлением referred_by: поле пишется один раз.
	ErrAlreadyRedeemed = errors.New("referral code already redeemed")
	// ErrExamNotFound экзамен не найден.
	ErrExamNotFound = errors.New("exam not found")
	// ErrLessonNotFound урок не найден.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrSectionNotFound раздел не найден.
	ErrSectionNotFound = errors.New("section not found")
)
