package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// Completer implements domain.TextCompleter on top of any langchaingo model.
type Completer struct {
	model       llms.Model
	timeout     time.Duration
	temperature float64
	logger      *zap.Logger
}

func NewCompleter(model llms.Model, timeout time.Duration, temperature float64, logger *zap.Logger) *Completer {
	return &Completer{
		model:       model,
		timeout:     timeout,
		temperature: temperature,
		logger:      logger,
	}
}

// Complete sends a single prompt and returns the model's reply text.
// Reasoning blocks (<think>...</think>) emitted by some local models are stripped.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(c.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error("LLM request timed out", zap.Duration("timeout", c.timeout), zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		c.logger.Error("Failed to get response from LLM", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	response = stripReasoning(response)
	if strings.TrimSpace(response) == "" {
		return "", errors.New("LLM returned an empty response")
	}

	c.logger.Debug("LLM response received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(response)))
	return response, nil
}

func stripReasoning(s string) string {
	thinkStart := strings.Index(s, "<think>")
	if thinkStart == -1 {
		return s
	}
	thinkEnd := strings.Index(s, "</think>")
	if thinkEnd == -1 || thinkEnd < thinkStart {
		return s
	}
	return strings.TrimSpace(s[:thinkStart] + s[thinkEnd+len("</think>"):])
}
