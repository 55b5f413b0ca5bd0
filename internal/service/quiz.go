package service

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/util"

	"go.uber.org/zap"
)

// Stage names a step of the generation pipeline.
type Stage string

const (
	StageReceived     Stage = "received"
	StageExtracting   Stage = "extracting"
	StageSynthesizing Stage = "synthesizing"
	StagePersisting   Stage = "persisting"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, url string) (*domain.QuizOutput, error)
	GetHistory(ctx context.Context) ([]*domain.QuizSummary, error)
	GetQuiz(ctx context.Context, id string) (*domain.StoredQuiz, error)
}

// quizService implements QuizService
type quizService struct {
	extractor   domain.ContentExtractor
	synthesizer domain.QuizSynthesizer
	repo        domain.QuizRepository
	logger      *zap.Logger
	now         func() time.Time
}

// Option customises a quiz service.
type Option func(*quizService)

// WithClock replaces the clock used to stamp generated quizzes.
func WithClock(now func() time.Time) Option {
	return func(s *quizService) {
		s.now = now
	}
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	extractor domain.ContentExtractor,
	synthesizer domain.QuizSynthesizer,
	repo domain.QuizRepository,
	logger *zap.Logger,
	opts ...Option,
) QuizService {
	s := &quizService{
		extractor:   extractor,
		synthesizer: synthesizer,
		repo:        repo,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateQuiz runs the pipeline for one URL. Nothing is persisted unless
// every stage succeeds, and the returned quiz is the in-memory result.
func (s *quizService) GenerateQuiz(ctx context.Context, url string) (*domain.QuizOutput, error) {
	log := s.logger.With(zap.String("url", url))
	started := s.now()
	log.Info("quiz generation", zap.String("stage", string(StageReceived)))

	fail := func(stage Stage, err error) (*domain.QuizOutput, error) {
		log.Warn("quiz generation",
			zap.String("stage", string(StageFailed)),
			zap.String("failed_at", string(stage)),
			zap.String("code", string(domain.CodeOf(err))),
			zap.Error(err))
		return nil, err
	}

	log.Debug("quiz generation", zap.String("stage", string(StageExtracting)))
	article, err := s.extractor.Extract(ctx, url)
	if err != nil {
		return fail(StageExtracting, err)
	}

	log.Debug("quiz generation", zap.String("stage", string(StageSynthesizing)), zap.String("title", article.Title))
	quiz, err := s.synthesizer.Synthesize(ctx, article.Text, article.Title)
	if err != nil {
		return fail(StageSynthesizing, err)
	}

	log.Debug("quiz generation", zap.String("stage", string(StagePersisting)))
	stored := &domain.StoredQuiz{
		URL:            url,
		Title:          quiz.Title,
		DateGenerated:  util.NormalizeTime(s.now()),
		ScrapedContent: article.Text,
		QuizData:       quiz,
	}
	id, err := s.repo.Insert(ctx, stored)
	if err != nil {
		return fail(StagePersisting, err)
	}

	log.Info("quiz generation",
		zap.String("stage", string(StageDone)),
		zap.String("id", id),
		zap.Int("questions", len(quiz.Questions)),
		zap.Duration("elapsed", s.now().Sub(started)))
	return quiz, nil
}

// GetHistory implements QuizService
func (s *quizService) GetHistory(ctx context.Context) ([]*domain.QuizSummary, error) {
	return s.repo.ListAll(ctx)
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, id string) (*domain.StoredQuiz, error) {
	return s.repo.GetByID(ctx, id)
}
