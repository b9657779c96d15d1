package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examprephub/examprep-backend/internal/models"
)

func TestMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewMaker(secretKey, tokenTTL)

	tests := []struct {
		name    string
		userUID string
		role    models.Role
	}{
		{
			name:    "admin user",
			userUID: "7d6f9a3c-1111-4e2b-9c55-000000000001",
			role:    models.RoleAdmin,
		},
		{
			name:    "regular user",
			userUID: "7d6f9a3c-1111-4e2b-9c55-000000000002",
			role:    models.RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userUID, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, tt.role, claims.Role)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewMaker(secretKey, tokenTTL)

	validToken, err := maker.GenerateToken("some-uid", models.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "malformed token",
			token: "invalid.token.here",
		},
		{
			name:  "expired token",
			token: createExpiredToken(t, secretKey),
		},
		{
			name:  "wrong secret key",
			token: createTokenWithWrongSecret(t),
		},
		{
			name:  "tampered token",
			token: validToken + "tampered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewMaker("first_secret_key", 15*time.Minute)
	maker2 := NewMaker("different_secret_key", 15*time.Minute)

	token, err := maker1.GenerateToken("some-uid", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewMaker(secretKey, -time.Hour)
	token, err := maker.GenerateToken("some-uid", models.RoleUser)
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewMaker("wrong_secret_key", 15*time.Minute)
	token, err := wrongMaker.GenerateToken("some-uid", models.RoleUser)
	require.NoError(t, err)
	return token
}
