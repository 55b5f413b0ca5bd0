package llm

import (
	"context"
	"fmt"
	"net/http"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"
)

// NewModel builds the langchaingo model for the configured provider.
// A missing credential is reported as a configuration error.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	if cfg.Credential() == "" {
		return nil, domain.NewConfigurationError(fmt.Sprintf("no credential configured for LLM provider %q", cfg.Provider))
	}

	switch cfg.Provider {
	case ProviderGoogleAI:
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google AI client: %w", err)
		}
		return model, nil
	case ProviderOpenAI:
		model, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return model, nil
	case ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return model, nil
	default:
		return nil, domain.NewConfigurationError(fmt.Sprintf("unsupported LLM provider %q", cfg.Provider))
	}
}
