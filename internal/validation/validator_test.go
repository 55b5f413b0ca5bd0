package validation

import (
	"testing"

	"wiki-quiz/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidator_ValidateGenerateQuizRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		url       string
		wantField string
	}{
		{"valid https", "https://en.wikipedia.org/wiki/Alan_Turing", ""},
		{"valid http", "http://en.wikipedia.org/wiki/Go", ""},
		{"foreign host passes shape check", "https://example.com/page", ""},
		{"empty", "", "url"},
		{"blank", "   ", "url"},
		{"relative", "/wiki/Go", "url"},
		{"no scheme", "en.wikipedia.org/wiki/Go", "url"},
		{"ftp", "ftp://en.wikipedia.org/wiki/Go", "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateGenerateQuizRequest(tt.url)
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			if assert.Len(t, errs, 1) {
				assert.Equal(t, tt.wantField, errs[0].Field)
			}
		})
	}
}

func TestValidator_ValidateQuizID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateQuizID(util.NewULID()))
	assert.Empty(t, v.ValidateQuizID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))

	for _, id := range []string{"", "42", "01arz3ndektsv4rrffq69g5fav", "01ARZ3NDEKTSV4RRFFQ69G5FAU1", "01ARZ3NDEKTSV4RRFFQ69G5FAI"} {
		errs := v.ValidateQuizID(id)
		if assert.Len(t, errs, 1, "id %q", id) {
			assert.Equal(t, "id", errs[0].Field)
		}
	}
}
