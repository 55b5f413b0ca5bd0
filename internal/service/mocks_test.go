package service

import (
	"context"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockContentExtractor ---
type MockContentExtractor struct {
	mock.Mock
}

func (m *MockContentExtractor) Extract(ctx context.Context, url string) (*domain.Article, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

// --- MockQuizSynthesizer ---
type MockQuizSynthesizer struct {
	mock.Mock
}

func (m *MockQuizSynthesizer) Synthesize(ctx context.Context, text, title string) (*domain.QuizOutput, error) {
	args := m.Called(ctx, text, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizOutput), args.Error(1)
}

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Insert(ctx context.Context, quiz *domain.StoredQuiz) (string, error) {
	args := m.Called(ctx, quiz)
	return args.String(0), args.Error(1)
}

func (m *MockQuizRepository) ListAll(ctx context.Context) ([]*domain.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*domain.StoredQuiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredQuiz), args.Error(1)
}
