package quizgen

import (
	"context"

	"wiki-quiz/internal/domain"

	"go.uber.org/zap"
)

// Synthesizer implements domain.QuizSynthesizer.
type Synthesizer struct {
	completer domain.TextCompleter
	logger    *zap.Logger
}

// NewSynthesizer creates a Synthesizer. A nil completer means no oracle is
// configured; every Synthesize call then fails with a configuration error.
func NewSynthesizer(completer domain.TextCompleter, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{completer: completer, logger: logger}
}

// Synthesize asks the oracle for a quiz about the article and validates the reply.
func (s *Synthesizer) Synthesize(ctx context.Context, text, title string) (*domain.QuizOutput, error) {
	if s.completer == nil {
		return nil, domain.NewConfigurationError("LLM credential is not configured")
	}

	reply, err := s.completer.Complete(ctx, BuildPrompt(title, text))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	out, strategy, err := parseQuizResponse(reply)
	if err != nil {
		s.logger.Warn("could not recover quiz from LLM reply",
			zap.String("title", title),
			zap.Int("reply_chars", len(reply)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("quiz parsed", zap.String("strategy", strategy), zap.Int("questions", len(out.Questions)))
	if warnings := out.CardinalityWarnings(); len(warnings) > 0 {
		s.logger.Warn("quiz outside advised sizes", zap.String("title", title), zap.Strings("warnings", warnings))
	}
	return out, nil
}
