package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "detail",
			identifier:  "01HZX3",
			expectedKey: "wikiquiz:quiz:detail:01HZX3",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "detail",
			identifier:  "01HZX3",
			paramsKey:   []string{},
			expectedKey: "wikiquiz:quiz:detail:01HZX3",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quiz",
			objectType:  "history",
			identifier:  "all",
			paramsKey:   []string{"page-1", "size_20"},
			expectedKey: "wikiquiz:quiz:history:all:page-1_size_20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestQuizDetailKey(t *testing.T) {
	assert.Equal(t, "wikiquiz:quiz:detail:abc", QuizDetailKey("abc"))
}
