package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/examprephub/examprep-backend/internal/models"
	"github.com/examprephub/examprep-backend/internal/storage/repository"
)

type ContentRepoMock struct{ mock.Mock }

func (m *ContentRepoMock) CreateExam(ctx context.Context, exam models.Exam) (string, error) {
	args := m.Called(ctx, exam)
	return args.String(0), args.Error(1)
}

func (m *ContentRepoMock) ListExams(ctx context.Context) ([]*models.Exam, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Exam), args.Error(1)
}

func (m *ContentRepoMock) UpdateExam(ctx context.Context, exam models.Exam, id string) error {
	args := m.Called(ctx, exam, id)
	return args.Error(0)
}

func (m *ContentRepoMock) RemoveExam(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ContentRepoMock) CreateSection(ctx context.Context, section models.Section) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *ContentRepoMock) GetSection(ctx context.Context, id string) (*models.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func (m *ContentRepoMock) ListSections(ctx context.Context) ([]*models.Section, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Section), args.Error(1)
}

func (m *ContentRepoMock) CreateLesson(ctx context.Context, lesson models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *ContentRepoMock) ListLessons(ctx context.Context) ([]*models.Lesson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *ContentRepoMock) UpdateLesson(ctx context.Context, lesson models.Lesson, id string) error {
	args := m.Called(ctx, lesson, id)
	return args.Error(0)
}

func (m *ContentRepoMock) RemoveLesson(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ContentRepoMock) CreateQuestion(ctx context.Context, q models.Question) (string, error) {
	args := m.Called(ctx, q)
	return args.String(0), args.Error(1)
}

func (m *ContentRepoMock) ListQuestionsByTopic(ctx context.Context, topicID string) ([]*models.Question, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

type SubsRepoMock struct{ mock.Mock }

func (m *SubsRepoMock) FindAnyActiveSubscription(ctx context.Context, userUID string, now time.Time) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_ListQuestions_Gate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	questions := []*models.Question{
		{ID: "q-1", TopicID: "topic-1", Text: "...", Options: []string{"a", "b"}},
	}

	tests := []struct {
		name       string
		principal  models.Principal
		setupMocks func(repo *ContentRepoMock, subs *SubsRepoMock, cache *CacheMock)
		wantErr    error
	}{
		{
			name:      "админ получает вопросы без проверки подписок",
			principal: models.Principal{UserUID: "admin-1", Role: models.RoleAdmin},
			setupMocks: func(repo *ContentRepoMock, _ *SubsRepoMock, cache *CacheMock) {
				cache.On("Get", "questions:topic-1", mock.Anything).Return(false, nil).Once()
				repo.On("ListQuestionsByTopic", mock.Anything, "topic-1").Return(questions, nil).Once()
				cache.On("Set", "questions:topic-1", questions, questionsCacheTTL).Return(nil).Once()
			},
		},
		{
			name:      "любая действующая подписка открывает банк",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleUser},
			setupMocks: func(repo *ContentRepoMock, subs *SubsRepoMock, cache *CacheMock) {
				subs.On("FindAnyActiveSubscription", mock.Anything, "user-1", now).
					Return(&models.Subscription{ID: "sub-1", Type: "examB"}, nil).Once()
				cache.On("Get", "questions:topic-1", mock.Anything).Return(false, nil).Once()
				repo.On("ListQuestionsByTopic", mock.Anything, "topic-1").Return(questions, nil).Once()
				cache.On("Set", "questions:topic-1", questions, questionsCacheTTL).Return(nil).Once()
			},
		},
		{
			name:      "без подписки банк закрыт",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleUser},
			setupMocks: func(_ *ContentRepoMock, subs *SubsRepoMock, _ *CacheMock) {
				subs.On("FindAnyActiveSubscription", mock.Anything, "user-1", now).
					Return(nil, repository.ErrSubscriptionNotFound).Once()
			},
			wantErr: ErrSubscriptionRequired,
		},
		{
			name:      "сбой хранилища при проверке подписки это ошибка",
			principal: models.Principal{UserUID: "user-1", Role: models.RoleUser},
			setupMocks: func(_ *ContentRepoMock, subs *SubsRepoMock, _ *CacheMock) {
				subs.On("FindAnyActiveSubscription", mock.Anything, "user-1", now).
					Return(nil, errors.New("db connection lost")).Once()
			},
			wantErr: errors.New("db connection lost"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ContentRepoMock)
			subs := new(SubsRepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, subs, cache)

			svc := New(repo, subs, cache, newNoopLogger())
			got, err := svc.ListQuestions(context.Background(), tt.principal, "topic-1", now)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrSubscriptionRequired) {
					assert.ErrorIs(t, err, ErrSubscriptionRequired)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, questions, got)
			}
			repo.AssertExpectations(t)
			subs.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_ListQuestions_CacheHit(t *testing.T) {
	// При попадании в кеш хранилище не трогается.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(ContentRepoMock)
	subs := new(SubsRepoMock)
	cache := new(CacheMock)

	cache.On("Get", "questions:topic-1", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*[]*models.Question)
			*out = []*models.Question{{ID: "q-cached", TopicID: "topic-1"}}
		}).Return(true, nil).Once()

	svc := New(repo, subs, cache, newNoopLogger())
	got, err := svc.ListQuestions(context.Background(),
		models.Principal{UserUID: "admin-1", Role: models.RoleAdmin}, "topic-1", now)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "q-cached", got[0].ID)
	repo.AssertNotCalled(t, "ListQuestionsByTopic", mock.Anything, mock.Anything)
}

func TestService_CreateQuestion_InvalidatesCache(t *testing.T) {
	repo := new(ContentRepoMock)
	subs := new(SubsRepoMock)
	cache := new(CacheMock)

	dummy := models.DummyQuestion{
		TopicID:      "topic-1",
		Text:         "Which shift key for capital letters on the left half?",
		Options:      []string{"left", "right"},
		CorrectIndex: 1,
		Order:        3,
	}

	repo.On("CreateQuestion", mock.Anything, mock.MatchedBy(func(q models.Question) bool {
		return q.TopicID == "topic-1" && q.CorrectIndex == 1 && q.Order == 3 && len(q.Options) == 2
	})).Return("q-1", nil).Once()
	cache.On("Invalidate", "questions:topic-1").Return(nil).Once()

	svc := New(repo, subs, cache, newNoopLogger())
	id, err := svc.CreateQuestion(context.Background(), dummy)

	require.NoError(t, err)
	assert.Equal(t, "q-1", id)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_CreateLesson(t *testing.T) {
	dummy := models.DummyLesson{
		ID:        "lesson-3",
		SectionID: "section-1",
		Title:     "Home row drills",
	}

	t.Run("урок создаётся в существующем разделе", func(t *testing.T) {
		repo := new(ContentRepoMock)
		repo.On("GetSection", mock.Anything, "section-1").
			Return(&models.Section{ID: "section-1", Name: "Basics"}, nil).Once()
		repo.On("CreateLesson", mock.Anything, mock.MatchedBy(func(l models.Lesson) bool {
			return l.ID == "lesson-3" && l.SectionID == "section-1"
		})).Return(nil).Once()

		svc := New(repo, new(SubsRepoMock), new(CacheMock), newNoopLogger())
		require.NoError(t, svc.CreateLesson(context.Background(), dummy))
		repo.AssertExpectations(t)
	})

	t.Run("несуществующий раздел останавливает создание", func(t *testing.T) {
		repo := new(ContentRepoMock)
		repo.On("GetSection", mock.Anything, "section-1").
			Return(nil, repository.ErrSectionNotFound).Once()

		svc := New(repo, new(SubsRepoMock), new(CacheMock), newNoopLogger())
		err := svc.CreateLesson(context.Background(), dummy)
		assert.ErrorIs(t, err, repository.ErrSectionNotFound)
		repo.AssertNotCalled(t, "CreateLesson", mock.Anything, mock.Anything)
	})
}

func TestService_ExamCRUD(t *testing.T) {
	repo := new(ContentRepoMock)
	svc := New(repo, new(SubsRepoMock), new(CacheMock), newNoopLogger())

	t.Run("создание переносит все поля", func(t *testing.T) {
		repo.On("CreateExam", mock.Anything, models.Exam{
			Title: "CPT Mock 1", Type: "cpt", IsFree: true, Duration: 15,
		}).Return("exam-1", nil).Once()

		id, err := svc.CreateExam(context.Background(), models.DummyExam{
			Title: "CPT Mock 1", Type: "cpt", IsFree: true, Duration: 15,
		})
		require.NoError(t, err)
		assert.Equal(t, "exam-1", id)
	})

	t.Run("обновление несуществующего экзамена", func(t *testing.T) {
		repo.On("UpdateExam", mock.Anything, mock.Anything, "exam-404").
			Return(repository.ErrExamNotFound).Once()

		err := svc.UpdateExam(context.Background(), models.DummyExam{Title: "x"}, "exam-404")
		assert.ErrorIs(t, err, repository.ErrExamNotFound)
	})

	repo.AssertExpectations(t)
}
