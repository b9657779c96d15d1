package repository

import (
	"context"
	"fmt"

	"github.com/examprephub/examprep-backend/internal/models"
)

// CreateResult сохраняет итог экзамена и возвращает его ID.
func (s *Storage) CreateResult(ctx context.Context, res models.Result) (string, error) {
	const op = "storage.CreateResult"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO results (user_uid, exam_id, exam_title, exam_type,
			      total_questions, total_answered, total_correct, total_incorrect,
			      total_score, percentage, time_taken, submitted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		res.UserUID, res.ExamID, res.ExamTitle, res.ExamType,
		res.TotalQuestions, res.TotalAnswered, res.TotalCorrect, res.TotalIncorrect,
		res.TotalScore, res.Percentage, res.TimeTaken, res.SubmittedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListResults возвращает итоги пользователя, свежие первыми, с ограничением.
func (s *Storage) ListResults(ctx context.Context, userUID string, limit int) ([]*models.Result, error) {
	const op = "storage.ListResults"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, exam_id, exam_title, exam_type, total_questions,
			      total_answered, total_correct, total_incorrect, total_score,
			      percentage, time_taken, submitted_at
			  FROM results
			  WHERE user_uid = $1
			  ORDER BY submitted_at DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Result
	for rows.Next() {
		var item models.Result
		if err := rows.Scan(&item.ID, &item.UserUID, &item.ExamID, &item.ExamTitle,
			&item.ExamType, &item.TotalQuestions, &item.TotalAnswered, &item.TotalCorrect,
			&item.TotalIncorrect, &item.TotalScore, &item.Percentage, &item.TimeTaken,
			&item.SubmittedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
