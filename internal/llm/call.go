package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// invokeFunc performs one provider round trip and returns the response text
// and the model name reported by the provider.
type invokeFunc func(ctx context.Context) (text string, model string, err error)

// caller applies the timeout, attempt budget and observer reporting shared
// by every provider.
type caller struct {
	cfg      LLMConfig
	observer Observer
}

func newCaller(cfg LLMConfig, observer Observer) caller {
	if observer == nil {
		observer = NoopObserver{}
	}
	return caller{cfg: cfg, observer: observer}
}

func (c caller) run(ctx context.Context, task TaskType, invoke invokeFunc) (*GenerateResponse, error) {
	start := time.Now()

	if timeoutMs := c.cfg.TaskTimeout(task); timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
		defer cancel()
	}

	var lastErr error
	attempts := 1 + max(c.cfg.MaxRetries, 0)

	for i := 0; i < attempts; i++ {
		text, model, err := invoke(ctx)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			if model == "" {
				model = c.cfg.Model
			}
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      task,
				Provider:  c.cfg.Provider,
				Model:     model,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	err := c.classify(ctx, lastErr, attempts)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  c.cfg.Provider,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c caller) classify(ctx context.Context, err error, attempts int) error {
	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%s %w", c.cfg.Provider, ErrTimeout)
	case isConnectionError(err):
		return fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, c.cfg.Provider, err)
	case errors.Is(err, ErrEmptyResponse):
		return fmt.Errorf("%s: %w", c.cfg.Provider, ErrEmptyResponse)
	case attempts > 1:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	default:
		return fmt.Errorf("%s request: %w", c.cfg.Provider, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
