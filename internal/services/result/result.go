// Package result реализует сохранение и выдачу итогов экзаменов.
package result

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/examprephub/examprep-backend/internal/models"
)

// HistoryLimit сколько последних итогов возвращается в истории пользователя.
const HistoryLimit = 50

// ResultRepository определяет методы работы с итогами в хранилище.
type ResultRepository interface {
	CreateResult(ctx context.Context, res models.Result) (string, error)
	ListResults(ctx context.Context, userUID string, limit int) ([]*models.Result, error)
}

// Service реализует бизнес-логику итогов экзаменов.
type Service struct {
	repo ResultRepository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo ResultRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Save сохраняет итог экзамена пользователя. Владелец и момент сдачи
// проставляются сервером: клиентским значениям здесь доверять нельзя.
func (s *Service) Save(ctx context.Context, userUID string, dummy models.DummyResult) (string, error) {
	const op = "result.Save"

	id, err := s.repo.CreateResult(ctx, models.Result{
		UserUID:        userUID,
		ExamID:         dummy.ExamID,
		ExamTitle:      dummy.ExamTitle,
		ExamType:       dummy.ExamType,
		TotalQuestions: dummy.TotalQuestions,
		TotalAnswered:  dummy.TotalAnswered,
		TotalCorrect:   dummy.TotalCorrect,
		TotalIncorrect: dummy.TotalIncorrect,
		TotalScore:     dummy.TotalScore,
		Percentage:     dummy.Percentage,
		TimeTaken:      dummy.TimeTaken,
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("exam result saved",
		slog.String("user_uid", userUID),
		slog.String("exam_id", dummy.ExamID),
		slog.Float64("percentage", dummy.Percentage))
	return id, nil
}

// List возвращает последние итоги пользователя, свежие первыми.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Result, error) {
	const op = "result.List"
	results, err := s.repo.ListResults(ctx, userUID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return results, nil
}
