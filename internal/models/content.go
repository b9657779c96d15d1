package models

import "time"

// Exam типовой экзамен (typing/CPT тест) из каталога платформы.
type Exam struct {
	ID        string    // Уникальный идентификатор
	Title     string    // Название экзамена
	Type      string    // Категория контента, к которой относится экзамен
	IsFree    bool      // Бесплатный ли экзамен
	Duration  int       // Длительность в минутах
	CreatedAt time.Time // Дата добавления
}

// DummyExam принимает данные экзамена из JSON-запроса администратора.
type DummyExam struct {
	Title    string `json:"title" validate:"required"`
	Type     string `json:"type" validate:"required"`
	IsFree   bool   `json:"is_free"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}

// Section раздел учебного курса, объединяет уроки.
type Section struct {
	ID           string // Уникальный идентификатор
	Name         string // Название раздела
	Description  string // Описание
	LessonNumber int    // Порядок раздела в курсе
}

// DummySection принимает данные раздела из JSON-запроса администратора.
type DummySection struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	LessonNumber int    `json:"lesson_number" validate:"gte=0"`
}

// Lesson урок печати. Контент хранится в трёх раскладках: английской,
// хинди-ремингтон и хинди-inscript.
type Lesson struct {
	ID               string // Уникальный идентификатор
	SectionID        string // Раздел, к которому относится урок
	Title            string // Название
	TitleHindi       string // Название на хинди
	Description      string // Описание
	DescriptionHindi string // Описание на хинди
	Difficulty       string // beginner | intermediate | advanced
	EstimatedTime    string // Оценка времени прохождения, например "5 minutes"
	ContentEnglish   string // Текст урока, английская раскладка
	ContentRamington string // Текст урока, хинди-ремингтон
	ContentInscript  string // Текст урока, хинди-inscript
	IsFree           bool   // Доступен ли урок без подписки
}

// DummyLesson принимает данные урока из JSON-запроса администратора.
type DummyLesson struct {
	ID               string `json:"id" validate:"required"`
	SectionID        string `json:"section_id" validate:"required"`
	Title            string `json:"title" validate:"required"`
	TitleHindi       string `json:"title_hindi"`
	Description      string `json:"description"`
	DescriptionHindi string `json:"description_hindi"`
	Difficulty       string `json:"difficulty"`
	EstimatedTime    string `json:"estimated_time"`
	ContentEnglish   string `json:"content_english"`
	ContentRamington string `json:"content_ramington"`
	ContentInscript  string `json:"content_inscript"`
	IsFree           bool   `json:"is_free"`
}

// Question вопрос из банка topic-wise MCQ.
type Question struct {
	ID           string    // Уникальный идентификатор
	TopicID      string    // Тема, к которой относится вопрос
	Text         string    // Формулировка вопроса
	Options      []string  // Варианты ответов
	CorrectIndex int       // Индекс правильного варианта
	Order        int       // Порядок внутри темы
	CreatedAt    time.Time // Дата добавления
}

// DummyQuestion принимает данные вопроса из JSON-запроса администратора.
type DummyQuestion struct {
	TopicID      string   `json:"topic_id" validate:"required"`
	Text         string   `json:"text" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
	Order        int      `json:"order"`
}
