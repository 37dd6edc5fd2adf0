package llm

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// TaskType identifies the model role being invoked.
type TaskType string

const (
	TaskDialogue   TaskType = "dialogue"
	TaskExtraction TaskType = "extraction"
	TaskGeneration TaskType = "generation"
)

// Provider names a hosted model backend.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider   Provider `env:"PROPOSAL_LLM_PROVIDER"`
	Model      string   `env:"PROPOSAL_LLM_MODEL"`
	APIKey     string   `env:"PROPOSAL_LLM_API_KEY"`
	Endpoint   string   `env:"PROPOSAL_LLM_ENDPOINT"`
	TimeoutMs  int      `env:"PROPOSAL_LLM_TIMEOUT_MS"`
	MaxRetries int      `env:"PROPOSAL_LLM_MAX_RETRIES"`
	LogCalls   bool     `env:"PROPOSAL_LLM_LOG_CALLS"`

	Tasks map[TaskType]TaskConfig
}

// taskTimeouts carries the optional per-task timeout overrides.
type taskTimeouts struct {
	Dialogue   int `env:"PROPOSAL_LLM_DIALOGUE_TIMEOUT_MS"`
	Extraction int `env:"PROPOSAL_LLM_EXTRACTION_TIMEOUT_MS"`
	Generation int `env:"PROPOSAL_LLM_GENERATION_TIMEOUT_MS"`
}

// providerKeys are the conventional per-vendor key variables, used when
// PROPOSAL_LLM_API_KEY is unset.
type providerKeys struct {
	Gemini    string `env:"GEMINI_API_KEY"`
	Google    string `env:"GOOGLE_API_KEY"`
	OpenAI    string `env:"OPENAI_API_KEY"`
	Anthropic string `env:"ANTHROPIC_API_KEY"`
}

// DefaultConfig returns an LLMConfig targeting Gemini 2.0 Flash.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderGemini,
		Model:      "gemini-2.0-flash",
		TimeoutMs:  30000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskDialogue:   {Temperature: 0.4, MaxTokens: 1024, TimeoutMs: 30000},
			TaskExtraction: {Temperature: 0.0, MaxTokens: 4096, TimeoutMs: 60000},
			TaskGeneration: {Temperature: 0.7, MaxTokens: 8192, TimeoutMs: 120000},
		},
	}
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case ProviderOllama:
		return "llama3.2"
	default:
		return "gemini-2.0-flash"
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() (LLMConfig, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing llm config: %w", err)
	}

	var timeouts taskTimeouts
	if err := env.Parse(&timeouts); err != nil {
		return cfg, fmt.Errorf("parsing llm task timeouts: %w", err)
	}
	cfg.applyTaskTimeout(TaskDialogue, timeouts.Dialogue)
	cfg.applyTaskTimeout(TaskExtraction, timeouts.Extraction)
	cfg.applyTaskTimeout(TaskGeneration, timeouts.Generation)

	if cfg.Model == "" || (cfg.Model == DefaultModel(ProviderGemini) && cfg.Provider != ProviderGemini) {
		cfg.Model = DefaultModel(cfg.Provider)
	}

	if cfg.APIKey == "" {
		var keys providerKeys
		if err := env.Parse(&keys); err != nil {
			return cfg, fmt.Errorf("parsing provider keys: %w", err)
		}
		cfg.APIKey = keys.forProvider(cfg.Provider)
	}

	return cfg, nil
}

// Validate checks the provider name and credentials.
func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
		if c.APIKey == "" {
			return fmt.Errorf("%w for provider %s", ErrMissingAPIKey, c.Provider)
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	return nil
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// params resolves temperature and max tokens for a request, preferring the
// request's explicit values over the task defaults.
func (c LLMConfig) params(req GenerateRequest) (float64, int) {
	tc := c.Tasks[req.Task]
	temp, maxTok := tc.Temperature, tc.MaxTokens
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	if maxTok <= 0 {
		maxTok = 1024
	}
	return temp, maxTok
}

func (c *LLMConfig) applyTaskTimeout(task TaskType, ms int) {
	if ms <= 0 {
		return
	}
	if c.Tasks == nil {
		c.Tasks = map[TaskType]TaskConfig{}
	}
	tc := c.Tasks[task]
	tc.TimeoutMs = ms
	c.Tasks[task] = tc
}

func (k providerKeys) forProvider(p Provider) string {
	switch p {
	case ProviderGemini:
		if k.Gemini != "" {
			return k.Gemini
		}
		return k.Google
	case ProviderOpenAI:
		return k.OpenAI
	case ProviderAnthropic:
		return k.Anthropic
	default:
		return ""
	}
}
