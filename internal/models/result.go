package models

import "time"

// Result итог прохождения экзамена пользователем.
type Result struct {
	ID             string    // Уникальный идентификатор
	UserUID        string    // Кто проходил экзамен
	ExamID         string    // Какой экзамен
	ExamTitle      string    // Название экзамена на момент сдачи
	ExamType       string    // Категория экзамена
	TotalQuestions int       // Всего вопросов
	TotalAnswered  int       // Отвечено
	TotalCorrect   int       // Верных ответов
	TotalIncorrect int       // Неверных ответов
	TotalScore     float64   // Баллы
	Percentage     float64   // Процент
	TimeTaken      int       // Затраченное время в секундах
	SubmittedAt    time.Time // Момент сдачи
}

// DummyResult принимает итог экзамена из JSON-запроса.
type DummyResult struct {
	ExamID         string  `json:"exam_id" validate:"required"`
	ExamTitle      string  `json:"exam_title" validate:"required"`
	ExamType       string  `json:"exam_type" validate:"required"`
	TotalQuestions int     `json:"total_questions" validate:"gte=0"`
	TotalAnswered  int     `json:"total_answered" validate:"gte=0"`
	TotalCorrect   int     `json:"total_correct" validate:"gte=0"`
	TotalIncorrect int     `json:"total_incorrect" validate:"gte=0"`
	TotalScore     float64 `json:"total_score"`
	Percentage     float64 `json:"percentage" validate:"gte=0,lte=100"`
	TimeTaken      int     `json:"time_taken" validate:"gte=0"`
}
