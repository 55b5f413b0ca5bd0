package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedQuizRepository adds a read-through cache in front of GetByID.
// Stored quizzes never change, so cached entries are never invalidated.
// Insert and ListAll go straight to the underlying repository.
type CachedQuizRepository struct {
	next   domain.QuizRepository
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group
}

func NewCachedQuizRepository(next domain.QuizRepository, c domain.Cache, ttl time.Duration, logger *zap.Logger) *CachedQuizRepository {
	return &CachedQuizRepository{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedQuizRepository) Insert(ctx context.Context, quiz *domain.StoredQuiz) (string, error) {
	return r.next.Insert(ctx, quiz)
}

func (r *CachedQuizRepository) ListAll(ctx context.Context) ([]*domain.QuizSummary, error) {
	return r.next.ListAll(ctx)
}

// GetByID serves from the cache when possible. Cache failures fall back to
// the database; NotFound results are not cached.
func (r *CachedQuizRepository) GetByID(ctx context.Context, id string) (*domain.StoredQuiz, error) {
	key := cache.QuizDetailKey(id)

	if quiz, ok := r.fromCache(ctx, key); ok {
		return quiz, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		quiz, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		r.store(ctx, key, quiz)
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.StoredQuiz), nil
}

func (r *CachedQuizRepository) fromCache(ctx context.Context, key string) (*domain.StoredQuiz, bool) {
	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			r.logger.Warn("quiz cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var quiz domain.StoredQuiz
	if err := json.Unmarshal([]byte(cached), &quiz); err != nil || quiz.QuizData == nil {
		r.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	r.logger.Debug("quiz cache hit", zap.String("key", key))
	return &quiz, true
}

func (r *CachedQuizRepository) store(ctx context.Context, key string, quiz *domain.StoredQuiz) {
	payload, err := json.Marshal(quiz)
	if err != nil {
		r.logger.Warn("failed to encode quiz for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, key, string(payload), r.ttl); err != nil {
		r.logger.Warn("quiz cache write failed", zap.String("key", key), zap.Error(err))
	}
}
