package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Wrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewFetchFailedError("https://en.wikipedia.org/wiki/Go", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, ErrFetchFailed, CodeOf(err))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ErrInternal},
		{"domain error", NewNoContentError(), ErrNoContent},
		{"wrapped domain error", fmt.Errorf("stage: %w", NewQuizNotFoundError("abc")), ErrNotFound},
		{"validation errors", ValidationErrors{NewMissingFieldError("title")}, ErrValidation},
		{"wrapped validation errors", NewSynthesisFailedError(ValidationErrors{NewMissingFieldError("title")}), ErrSynthesisFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewDuplicateURLError("u", nil), ErrDuplicateURL))
	assert.False(t, IsCode(nil, ErrInternal))
	assert.False(t, IsCode(NewNoContentError(), ErrFetchFailed))
}

func TestDomainError_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewQuizNotFoundError("01HZ"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Quiz not found with ID: 01HZ"}`, string(b))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		NewMissingFieldError("url"),
		NewInvalidFormatError("id", "xyz"),
	}
	assert.Equal(t, `url: is required; id: has invalid format: "xyz"`, errs.Error())
}
