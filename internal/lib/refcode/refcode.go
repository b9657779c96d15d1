// Package refcode генерирует реферальные коды пользователей.
//
// Коды распространяются как человекочитаемые токены, поэтому алфавит не
// содержит символов, которые легко перепутать при вводе (0/O, 1/I/L).
// Код всегда в верхнем регистре — это каноническая форма хранения,
// сравнение при погашении выполняется после приведения к верхнему регистру.
package refcode

import (
	"crypto/rand"
	"fmt"
)

const (
	alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	// Length длина реферального кода.
	Length = 8
)

// Generate возвращает новый случайный реферальный код.
func Generate() (string, error) {
	const op = "refcode.Generate"
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
