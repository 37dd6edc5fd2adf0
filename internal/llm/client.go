package llm

import (
	"context"
	"fmt"
	"strings"
)

// Role identifies the author of a conversation message sent to a model.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation history.
type Message struct {
	Role Role
	Text string
}

// PropertyType is the JSON type of a schema property.
type PropertyType string

const (
	PropertyString  PropertyType = "string"
	PropertyBoolean PropertyType = "boolean"
)

// JSONProperty describes one field of a requested JSON object.
type JSONProperty struct {
	Name        string
	Type        PropertyType
	Description string
	Required    bool
}

// JSONSchema asks the provider for a single flat JSON object. Providers with
// native structured output pass it through; the rest receive it as an
// instruction appended to the system prompt.
type JSONSchema struct {
	Properties []JSONProperty
}

// Instruction renders the schema as a plain-text output contract.
func (s *JSONSchema) Instruction() string {
	var b strings.Builder
	b.WriteString("Respond ONLY with a single JSON object and no other text. Fields:\n")
	for _, p := range s.Properties {
		req := "optional, may be null"
		if p.Required {
			req = "required"
		}
		fmt.Fprintf(&b, "- %q (%s, %s): %s\n", p.Name, p.Type, req, p.Description)
	}
	return b.String()
}

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	Messages     []Message   // prior conversation, oldest first
	UserPrompt   string      // appended as a final user message when non-empty
	Schema       *JSONSchema // nil requests free text
	Temperature  *float64    // nil uses task default
	MaxTokens    *int        // nil uses task default
}

// Conversation returns Messages followed by UserPrompt. When both are empty
// the system prompt becomes the opening user message, since every provider
// needs at least one user turn to answer.
func (r GenerateRequest) Conversation() []Message {
	msgs := make([]Message, 0, len(r.Messages)+1)
	msgs = append(msgs, r.Messages...)
	if r.UserPrompt != "" {
		msgs = append(msgs, Message{Role: RoleUser, Text: r.UserPrompt})
	}
	if len(msgs) == 0 {
		msgs = append(msgs, Message{Role: RoleUser, Text: r.SystemPrompt})
	}
	return msgs
}

// systemWithSchema returns the system prompt with the schema instruction
// appended, for providers without native structured output.
func (r GenerateRequest) systemWithSchema() string {
	if r.Schema == nil {
		return r.SystemPrompt
	}
	return strings.TrimSpace(r.SystemPrompt + "\n\n" + r.Schema.Instruction())
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a hosted language model for text generation.
type LLMClient interface {
	// Generate sends a conversation and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the provider is configured and reachable.
	Available(ctx context.Context) bool
}
