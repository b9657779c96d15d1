package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/examprephub/examprep-backend/internal/http/middlewarectx"
	"github.com/examprephub/examprep-backend/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(tokenStr string) (*models.Principal, error) {
	args := m.Called(tokenStr)
	principal, _ := args.Get(0).(*models.Principal)
	return principal, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func contextWithPrincipal(ctx context.Context, p models.Principal) context.Context {
	ctx = context.WithValue(ctx, middlewarectx.UserUID, p.UserUID)
	return context.WithValue(ctx, middlewarectx.Role, p.Role)
}

func TestCookieAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		cookie         *http.Cookie
		setupMocks     func(m *AuthServiceMock)
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "запрос без cookie",
			cookie:         nil,
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "пустое значение cookie",
			cookie:         &http.Cookie{Name: "token", Value: ""},
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:   "невалидный токен",
			cookie: &http.Cookie{Name: "token", Value: "bad-token"},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", "bad-token").
					Return(nil, errors.New("invalid token")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:   "валидный токен кладёт идентичность в контекст",
			cookie: &http.Cookie{Name: "token", Value: "good-token"},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", "good-token").
					Return(&models.Principal{UserUID: "uid-1", Role: models.RoleUser}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMocks(authMock)

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				principal, ok := middlewarectx.PrincipalFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "uid-1", principal.UserUID)
				assert.Equal(t, models.RoleUser, principal.Role)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.CookieAuthMiddleware(authMock, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			authMock.AssertExpectations(t)
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	newRequest := func(principal *models.Principal) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/exams", nil)
		if principal == nil {
			return req
		}
		ctx := req.Context()
		ctx = contextWithPrincipal(ctx, *principal)
		return req.WithContext(ctx)
	}

	tests := []struct {
		name           string
		principal      *models.Principal
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "запрос без идентичности",
			principal:      nil,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "обычный пользователь получает 403",
			principal:      &models.Principal{UserUID: "uid-1", Role: models.RoleUser},
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "администратор проходит",
			principal:      &models.Principal{UserUID: "admin-1", Role: models.RoleAdmin},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.AdminOnlyMiddleware(newNoopLogger())(nextHandler)

			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, newRequest(tt.principal))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
