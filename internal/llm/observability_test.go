package llm

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogObserver_OnCallComplete(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogObserver(slog.New(slog.NewJSONHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{
		Task:      TaskExtraction,
		Provider:  ProviderGemini,
		Model:     "gemini-2.0-flash",
		LatencyMs: 42,
		Success:   false,
		ErrorCode: "TIMEOUT",
	})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "llm_call", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "extraction", rec["task"])
	assert.Equal(t, "gemini", rec["provider"])
	assert.Equal(t, float64(42), rec["latency_ms"])
	assert.Equal(t, "TIMEOUT", rec["error_code"])
}

func TestSlogObserver_SuccessOmitsErrorCode(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogObserver(slog.New(slog.NewJSONHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{Task: TaskDialogue, Success: true})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.NotContains(t, rec, "error_code")
}
