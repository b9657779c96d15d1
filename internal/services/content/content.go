// Package content реализует управление учебным контентом: каталогом
// экзаменов, уроками курса и банком вопросов по темам.
//
// CRUD-операции над экзаменами и уроками доступны только администратору,
// проверка роли выполняется на уровне HTTP. Чтение банка вопросов темы
// закрыто по-другому: администратор видит всё, остальным нужна хотя бы
// одна действующая подписка любого типа.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/examprephub/examprep-backend/internal/lib/sl"
	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

// questionsCacheTTL срок жизни кеша вопросов темы. Банк вопросов меняется
// только руками администратора, поэтому TTL щадящий, а запись вопроса
// инвалидирует ключ темы сразу.
const questionsCacheTTL = 10 * time.Minute

// ErrSubscriptionRequired у пользователя нет ни одной действующей подписки,
// банк вопросов закрыт.
var ErrSubscriptionRequired = errors.New("active subscription required")

// ContentRepository определяет методы работы с учебным контентом в хранилище.
type ContentRepository interface {
	CreateExam(ctx context.Context, exam models.Exam) (string, error)
	ListExams(ctx context.Context) ([]*models.Exam, error)
	UpdateExam(ctx context.Context, exam models.Exam, id string) error
	RemoveExam(ctx context.Context, id string) error

	CreateSection(ctx context.Context, section models.Section) error
	GetSection(ctx context.Context, id string) (*models.Section, error)
	ListSections(ctx context.Context) ([]*models.Section, error)

	CreateLesson(ctx context.Context, lesson models.Lesson) error
	ListLessons(ctx context.Context) ([]*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson, id string) error
	RemoveLesson(ctx context.Context, id string) error

	CreateQuestion(ctx context.Context, q models.Question) (string, error)
	ListQuestionsByTopic(ctx context.Context, topicID string) ([]*models.Question, error)
}

// SubscriptionRepository определяет поиск действующих подписок для гейта
// банка вопросов.
type SubscriptionRepository interface {
	FindAnyActiveSubscription(ctx context.Context, userUID string, now time.Time) (*models.Subscription, error)
}

// CacheService определяет методы кеширования.
type CacheService interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику управления контентом.
type Service struct {
	repo  ContentRepository
	subs  SubscriptionRepository
	cache CacheService
	log   *slog.Logger
}

// New создает новый Service.
func New(repo ContentRepository, subs SubscriptionRepository, cache CacheService, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		subs:  subs,
		cache: cache,
		log:   log,
	}
}

// CreateExam добавляет экзамен в каталог и возвращает его ID.
func (s *Service) CreateExam(ctx context.Context, dummy models.DummyExam) (string, error) {
	const op = "content.CreateExam"
	id, err := s.repo.CreateExam(ctx, models.Exam{
		Title:    dummy.Title,
		Type:     dummy.Type,
		IsFree:   dummy.IsFree,
		Duration: dummy.Duration,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListExams возвращает каталог экзаменов.
func (s *Service) ListExams(ctx context.Context) ([]*models.Exam, error) {
	return s.repo.ListExams(ctx)
}

// UpdateExam обновляет экзамен по ID.
func (s *Service) UpdateExam(ctx context.Context, dummy models.DummyExam, id string) error {
	const op = "content.UpdateExam"
	err := s.repo.UpdateExam(ctx, models.Exam{
		Title:    dummy.Title,
		Type:     dummy.Type,
		IsFree:   dummy.IsFree,
		Duration: dummy.Duration,
	}, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveExam удаляет экзамен по ID.
func (s *Service) RemoveExam(ctx context.Context, id string) error {
	return s.repo.RemoveExam(ctx, id)
}

// CreateSection добавляет раздел курса.
func (s *Service) CreateSection(ctx context.Context, dummy models.DummySection) error {
	const op = "content.CreateSection"
	err := s.repo.CreateSection(ctx, models.Section{
		ID:           dummy.ID,
		Name:         dummy.Name,
		Description:  dummy.Description,
		LessonNumber: dummy.LessonNumber,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSections возвращает разделы курса в порядке следования.
func (s *Service) ListSections(ctx context.Context) ([]*models.Section, error) {
	return s.repo.ListSections(ctx)
}

// CreateLesson добавляет урок. Раздел должен существовать, иначе
// repository.ErrSectionNotFound.
func (s *Service) CreateLesson(ctx context.Context, dummy models.DummyLesson) error {
	const op = "content.CreateLesson"
	if _, err := s.repo.GetSection(ctx, dummy.SectionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CreateLesson(ctx, lessonFromDummy(dummy)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListLessons возвращает все уроки курса.
func (s *Service) ListLessons(ctx context.Context) ([]*models.Lesson, error) {
	return s.repo.ListLessons(ctx)
}

// UpdateLesson обновляет урок по ID.
func (s *Service) UpdateLesson(ctx context.Context, dummy models.DummyLesson, id string) error {
	const op = "content.UpdateLesson"
	if err := s.repo.UpdateLesson(ctx, lessonFromDummy(dummy), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveLesson удаляет урок по ID.
func (s *Service) RemoveLesson(ctx context.Context, id string) error {
	return s.repo.RemoveLesson(ctx, id)
}

// CreateQuestion добавляет вопрос в банк темы и сбрасывает кеш этой темы.
func (s *Service) CreateQuestion(ctx context.Context, dummy models.DummyQuestion) (string, error) {
	const op = "content.CreateQuestion"

	id, err := s.repo.CreateQuestion(ctx, models.Question{
		TopicID:      dummy.TopicID,
		Text:         dummy.Text,
		Options:      dummy.Options,
		CorrectIndex: dummy.CorrectIndex,
		Order:        dummy.Order,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(questionsCacheKey(dummy.TopicID)); err != nil {
		// Кеш со своим TTL, устаревший список вопросов не критичен.
		s.log.Warn("failed to invalidate questions cache", sl.Err(err),
			slog.String("topic_id", dummy.TopicID))
	}
	return id, nil
}

// ListQuestions возвращает вопросы темы для principal. Администратор получает
// банк без проверок; остальным нужна хотя бы одна действующая подписка,
// иначе ErrSubscriptionRequired.
func (s *Service) ListQuestions(ctx context.Context, principal models.Principal, topicID string, now time.Time) ([]*models.Question, error) {
	const op = "content.ListQuestions"

	if principal.Role != models.RoleAdmin {
		_, err := s.subs.FindAnyActiveSubscription(ctx, principal.UserUID, now)
		if err != nil {
			if errors.Is(err, repository.ErrSubscriptionNotFound) {
				return nil, ErrSubscriptionRequired
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	key := questionsCacheKey(topicID)
	var cached []*models.Question
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read questions cache", sl.Err(err),
			slog.String("topic_id", topicID))
	}
	if found {
		return cached, nil
	}

	questions, err := s.repo.ListQuestionsByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(key, questions, questionsCacheTTL); err != nil {
		s.log.Warn("failed to write questions cache", sl.Err(err),
			slog.String("topic_id", topicID))
	}
	return questions, nil
}

func questionsCacheKey(topicID string) string {
	return "questions:" + topicID
}

func lessonFromDummy(d models.DummyLesson) models.Lesson {
	return models.Lesson{
		ID:               d.ID,
		SectionID:        d.SectionID,
		Title:            d.Title,
		TitleHindi:       d.TitleHindi,
		Description:      d.Description,
		DescriptionHindi: d.DescriptionHindi,
		Difficulty:       d.Difficulty,
		EstimatedTime:    d.EstimatedTime,
		ContentEnglish:   d.ContentEnglish,
		ContentRamington: d.ContentRamington,
		ContentInscript:  d.ContentInscript,
		IsFree:           d.IsFree,
	}
}
