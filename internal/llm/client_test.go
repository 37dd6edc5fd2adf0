package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversation_AppendsUserPrompt(t *testing.T) {
	req := GenerateRequest{
		SystemPrompt: "system",
		Messages: []Message{
			{Role: RoleAssistant, Text: "Who is the client?"},
			{Role: RoleUser, Text: "Acme Corp"},
		},
		UserPrompt: "Extract the fields.",
	}

	got := req.Conversation()
	assert.Equal(t, []Message{
		{Role: RoleAssistant, Text: "Who is the client?"},
		{Role: RoleUser, Text: "Acme Corp"},
		{Role: RoleUser, Text: "Extract the fields."},
	}, got)
}

func TestConversation_SystemOnlyBecomesUserTurn(t *testing.T) {
	req := GenerateRequest{SystemPrompt: "You collect proposal details."}
	assert.Equal(t, []Message{{Role: RoleUser, Text: "You collect proposal details."}}, req.Conversation())
}

func TestConversation_DoesNotMutateMessages(t *testing.T) {
	history := make([]Message, 1, 4)
	history[0] = Message{Role: RoleUser, Text: "hi"}
	req := GenerateRequest{Messages: history, UserPrompt: "more"}

	_ = req.Conversation()
	assert.Len(t, history, 1)
	assert.Equal(t, Message{}, history[:2][1])
}

func TestJSONSchema_Instruction(t *testing.T) {
	s := &JSONSchema{Properties: []JSONProperty{
		{Name: "question", Type: PropertyString, Description: "next question", Required: true},
		{Name: "done", Type: PropertyBoolean, Description: "all fields collected"},
	}}

	got := s.Instruction()
	assert.Contains(t, got, "Respond ONLY with a single JSON object")
	assert.Contains(t, got, `"question" (string, required): next question`)
	assert.Contains(t, got, `"done" (boolean, optional, may be null): all fields collected`)
}

func TestSystemWithSchema(t *testing.T) {
	req := GenerateRequest{SystemPrompt: "base"}
	assert.Equal(t, "base", req.systemWithSchema())

	req.Schema = &JSONSchema{Properties: []JSONProperty{{Name: "a", Type: PropertyString}}}
	got := req.systemWithSchema()
	assert.Contains(t, got, "base\n\nRespond ONLY")
}
