package llm

import (
	"context"
	"fmt"
)

// NewClient builds the LLMClient for the configured provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, observer), nil
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, observer), nil
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// Unavailable is the LLMClient used when no provider could be configured.
// Every call fails with ErrProviderUnavailable and the configuration error.
type Unavailable struct {
	Err error
}

func (u Unavailable) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, u.Err)
}

func (u Unavailable) Available(context.Context) bool { return false }
