package intelligence

import (
	"context"
	"encoding/json"

	"github.com/alexanderramin/proposal/internal/llm"
)

type mockClient struct {
	response string
	err      error
	requests []llm.GenerateRequest
}

func (m *mockClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "gemini-2.0-flash"}, nil
}

func (m *mockClient) Available(_ context.Context) bool { return m.err == nil }

func (m *mockClient) lastReq() llm.GenerateRequest {
	return m.requests[len(m.requests)-1]
}

func toJSON(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}
