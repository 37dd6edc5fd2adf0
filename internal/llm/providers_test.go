package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialogueRequest() GenerateRequest {
	return GenerateRequest{
		Task:         TaskDialogue,
		SystemPrompt: "You collect proposal details.",
		Messages: []Message{
			{Role: RoleUser, Text: "Hello, let's start the proposal."},
			{Role: RoleAssistant, Text: "Who is the client?"},
			{Role: RoleUser, Text: "Acme Corp"},
		},
		Schema: &JSONSchema{Properties: []JSONProperty{
			{Name: "question", Type: PropertyString, Required: true},
			{Name: "done", Type: PropertyBoolean},
		}},
	}
}

func hostedConfig(p Provider, model, endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = p
	cfg.Model = model
	cfg.APIKey = "test-key"
	cfg.Endpoint = endpoint
	return cfg
}

func TestGeminiClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.0-flash:generateContent"), r.URL.Path)

		var body struct {
			Contents []struct {
				Role string `json:"role"`
			} `json:"contents"`
			GenerationConfig  map[string]any `json:"generationConfig"`
			SystemInstruction map[string]any `json:"systemInstruction"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 3)
		assert.Equal(t, "user", body.Contents[0].Role)
		assert.Equal(t, "model", body.Contents[1].Role)
		assert.Equal(t, "user", body.Contents[2].Role)
		assert.Equal(t, "application/json", body.GenerationConfig["responseMimeType"])
		assert.NotNil(t, body.GenerationConfig["responseSchema"])
		assert.NotNil(t, body.SystemInstruction)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"question\":\"What is the title?\"}"}]}}],"modelVersion":"gemini-2.0-flash"}`))
	}))
	defer srv.Close()

	client, err := NewGeminiClient(context.Background(), hostedConfig(ProviderGemini, "gemini-2.0-flash", srv.URL+"/"), nil)
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), dialogueRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"question":"What is the title?"}`, resp.Text)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
	assert.True(t, client.Available(context.Background()))
}

func TestGeminiClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	client, err := NewGeminiClient(context.Background(), hostedConfig(ProviderGemini, "gemini-2.0-flash", srv.URL+"/"), nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), dialogueRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
}

func TestOpenAIClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
			ResponseFormat map[string]any `json:"response_format"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body.Model)
		require.Len(t, body.Messages, 4)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Equal(t, "assistant", body.Messages[2].Role)
		assert.Equal(t, "user", body.Messages[3].Role)
		assert.Equal(t, "json_object", body.ResponseFormat["type"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"question\":\"q\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(hostedConfig(ProviderOpenAI, "gpt-4o-mini", srv.URL+"/"), nil)
	resp, err := client.Generate(context.Background(), dialogueRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"question":"q"}`, resp.Text)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
}

func TestOpenAIClient_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(hostedConfig(ProviderOpenAI, "gpt-4o-mini", srv.URL+"/"), nil)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskGeneration, UserPrompt: "write"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnthropicClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body struct {
			Model    string           `json:"model"`
			System   []map[string]any `json:"system"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-5-haiku-latest", body.Model)
		require.Len(t, body.System, 1)
		assert.Contains(t, body.System[0]["text"], "Respond ONLY with a single JSON object")
		require.Len(t, body.Messages, 3)
		assert.Equal(t, "assistant", body.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest","content":[{"type":"text","text":"{\"question\":"},{"type":"text","text":"\"q\"}"}],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient(hostedConfig(ProviderAnthropic, "claude-3-5-haiku-latest", srv.URL+"/"), nil)
	resp, err := client.Generate(context.Background(), dialogueRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"question":"q"}`, resp.Text)
	assert.Equal(t, "claude-3-5-haiku-latest", resp.Model)
}

func TestNewClient_SelectsProvider(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	cfg := DefaultConfig()
	cfg.Provider = "mistral"
	_, err = NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	c, err := NewClient(ctx, ollamaConfig("http://127.0.0.1:1"), nil)
	require.NoError(t, err)
	assert.IsType(t, &ollamaClient{}, c)

	c, err = NewClient(ctx, hostedConfig(ProviderOpenAI, "gpt-4o-mini", ""), nil)
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, c)

	c, err = NewClient(ctx, hostedConfig(ProviderAnthropic, "claude-3-5-haiku-latest", ""), nil)
	require.NoError(t, err)
	assert.IsType(t, &anthropicClient{}, c)

	c, err = NewClient(ctx, hostedConfig(ProviderGemini, "gemini-2.0-flash", ""), nil)
	require.NoError(t, err)
	assert.IsType(t, &geminiClient{}, c)
}

func TestUnavailable_FailsEveryCall(t *testing.T) {
	c := Unavailable{Err: ErrMissingAPIKey}

	_, err := c.Generate(context.Background(), dialogueRequest())
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "llm api key is required")
	assert.False(t, c.Available(context.Background()))
}
