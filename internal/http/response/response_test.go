package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"id": "abc"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Username string `validate:"required,min=3"`
	}

	err := validator.New().Struct(payload{Email: "not-an-email", Username: "ab"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "Email")
	assert.Contains(t, resp.Error, "Username")
}
