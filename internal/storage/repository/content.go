package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/examprephub/examprep-backend/internal/models"
)

// CreateExam вставляет новый экзамен и возвращает его ID.
func (s *Storage) CreateExam(ctx context.Context, exam models.Exam) (string, error) {
	const op = "storage.CreateExam"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO exams (title, type, is_free, duration)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		exam.Title, exam.Type, exam.IsFree, exam.Duration).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListExams возвращает все экзамены, новые первыми.
func (s *Storage) ListExams(ctx context.Context) ([]*models.Exam, error) {
	const op = "storage.ListExams"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, type, is_free, duration, created_at
			  FROM exams
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Exam
	for rows.Next() {
		var item models.Exam
		if err := rows.Scan(&item.ID, &item.Title, &item.Type, &item.IsFree,
			&item.Duration, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateExam обновляет экзамен по ID.
func (s *Storage) UpdateExam(ctx context.Context, exam models.Exam, id string) error {
	const op = "storage.UpdateExam"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE exams
			  SET title = $1, type = $2, is_free = $3, duration = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		exam.Title, exam.Type, exam.IsFree, exam.Duration, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrExamNotFound)
	}
	return nil
}

// RemoveExam удаляет экзамен по ID.
func (s *Storage) RemoveExam(ctx context.Context, id string) error {
	const op = "storage.RemoveExam"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrExamNotFound)
	}
	return nil
}

// CreateSection вставляет новый раздел курса.
func (s *Storage) CreateSection(ctx context.Context, section models.Section) error {
	const op = "storage.CreateSection"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sections (id, name, description, lesson_number)
			  VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query,
		section.ID, section.Name, section.Description, section.LessonNumber)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSection возвращает раздел по ID.
func (s *Storage) GetSection(ctx context.Context, id string) (*models.Section, error) {
	const op = "storage.GetSection"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, lesson_number
			  FROM sections
			  WHERE id = $1`
	var item models.Section
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Name,
		&item.Description, &item.LessonNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSectionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}

// ListSections возвращает разделы курса в порядке следования.
func (s *Storage) ListSections(ctx context.Context) ([]*models.Section, error) {
	const op = "storage.ListSections"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, lesson_number
			  FROM sections
			  ORDER BY lesson_number`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Section
	for rows.Next() {
		var item models.Section
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.LessonNumber); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateLesson вставляет новый урок.
func (s *Storage) CreateLesson(ctx context.Context, lesson models.Lesson) error {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lessons (id, section_id, title, title_hindi, description,
			      description_hindi, difficulty, estimated_time, content_english,
			      content_ramington, content_inscript, is_free)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.DB.ExecContext(ctx, query,
		lesson.ID, lesson.SectionID, lesson.Title, lesson.TitleHindi, lesson.Description,
		lesson.DescriptionHindi, lesson.Difficulty, lesson.EstimatedTime, lesson.ContentEnglish,
		lesson.ContentRamington, lesson.ContentInscript, lesson.IsFree)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListLessons возвращает все уроки.
func (s *Storage) ListLessons(ctx context.Context) ([]*models.Lesson, error) {
	const op = "storage.ListLessons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, section_id, title, title_hindi, description, description_hindi,
			      difficulty, estimated_time, content_english, content_ramington,
			      content_inscript, is_free
			  FROM lessons
			  ORDER BY section_id, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Lesson
	for rows.Next() {
		var item models.Lesson
		if err := rows.Scan(&item.ID, &item.SectionID, &item.Title, &item.TitleHindi,
			&item.Description, &item.DescriptionHindi, &item.Difficulty, &item.EstimatedTime,
			&item.ContentEnglish, &item.ContentRamington, &item.ContentInscript,
			&item.IsFree); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLesson обновляет урок по ID.
func (s *Storage) UpdateLesson(ctx context.Context, lesson models.Lesson, id string) error {
	const op = "storage.UpdateLesson"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE lessons
			  SET section_id = $1, title = $2, title_hindi = $3, description = $4,
			      description_hindi = $5, difficulty = $6, estimated_time = $7,
			      content_english = $8, content_ramington = $9, content_inscript = $10,
			      is_free = $11
			  WHERE id = $12`
	result, err := s.DB.ExecContext(ctx, query,
		lesson.SectionID, lesson.Title, lesson.TitleHindi, lesson.Description,
		lesson.DescriptionHindi, lesson.Difficulty, lesson.EstimatedTime,
		lesson.ContentEnglish, lesson.ContentRamington, lesson.ContentInscript,
		lesson.IsFree, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrLessonNotFound)
	}
	return nil
}

// RemoveLesson удаляет урок по ID.
func (s *Storage) RemoveLesson(ctx context.Context, id string) error {
	const op = "storage.RemoveLesson"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrLessonNotFound)
	}
	return nil
}

// CreateQuestion вставляет новый вопрос и возвращает его ID.
func (s *Storage) CreateQuestion(ctx context.Context, q models.Question) (string, error) {
	const op = "storage.CreateQuestion"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// Варианты ответов хранятся одним jsonb-полем.
	options, err := json.Marshal(q.Options)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO questions (topic_id, text, options, correct_index, question_order)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID string
	err = s.DB.QueryRowContext(ctx, query,
		q.TopicID, q.Text, options, q.CorrectIndex, q.Order).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListQuestionsByTopic возвращает вопросы темы в заданном порядке,
// новые — раньше при равном порядке.
func (s *Storage) ListQuestionsByTopic(ctx context.Context, topicID string) ([]*models.Question, error) {
	const op = "storage.ListQuestionsByTopic"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, topic_id, text, options, correct_index, question_order, created_at
			  FROM questions
			  WHERE topic_id = $1
			  ORDER BY question_order, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Question
	for rows.Next() {
		var item models.Question
		var options []byte
		if err := rows.Scan(&item.ID, &item.TopicID, &item.Text, &options,
			&item.CorrectIndex, &item.Order, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(options, &item.Options); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
