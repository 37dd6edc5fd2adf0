package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the model provider could not be reached.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrUnknownProvider indicates an unsupported provider name in config.
	ErrUnknownProvider = errors.New("unknown llm provider")

	// ErrMissingAPIKey indicates a hosted provider was selected without credentials.
	ErrMissingAPIKey = errors.New("llm api key is required")
)
