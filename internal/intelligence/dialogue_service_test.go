package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/proposal/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogueService_Open_UsesInstructionsOnly(t *testing.T) {
	client := &mockClient{response: `{"reason":"Identifies the audience.","question":"What is the client's name?","recommendation":null,"done":false}`}
	svc := NewDialogueService(client)

	turn, err := svc.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Identifies the audience.", turn.Reason)
	assert.Equal(t, "What is the client's name?", turn.Question)
	assert.Empty(t, turn.Recommendation)
	assert.False(t, turn.Done)

	req := client.lastReq()
	assert.Equal(t, llm.TaskDialogue, req.Task)
	assert.Equal(t, intakeSystemPrompt, req.SystemPrompt)
	assert.Empty(t, req.Messages)
	assert.Empty(t, req.UserPrompt)
	require.NotNil(t, req.Schema)
}

func TestDialogueService_Ask_SendsHistory(t *testing.T) {
	client := &mockClient{response: toJSON(DialogueTurn{
		Reason:         "A title anchors the document.",
		Question:       "What is the project title?",
		Recommendation: "Website Redesign",
	})}
	svc := NewDialogueService(client)

	history := []llm.Message{
		{Role: llm.RoleAssistant, Text: "Who is the client?"},
		{Role: llm.RoleUser, Text: "Acme Corp"},
	}
	turn, err := svc.Ask(context.Background(), history)
	require.NoError(t, err)

	assert.Equal(t, "Website Redesign", turn.Recommendation)
	assert.Equal(t, history, client.lastReq().Messages)
}

func TestDialogueService_Ask_MissingDoneDefaultsFalse(t *testing.T) {
	client := &mockClient{response: `{"reason":"r","question":"q"}`}
	turn, err := NewDialogueService(client).Ask(context.Background(), []llm.Message{{Role: llm.RoleUser, Text: "hi"}})
	require.NoError(t, err)
	assert.False(t, turn.Done)
}

func TestDialogueService_Ask_TrimsOutput(t *testing.T) {
	client := &mockClient{response: "```json\n{\"reason\":\"  r  \",\"question\":\"  All done  \",\"done\":true}\n```"}
	turn, err := NewDialogueService(client).Ask(context.Background(), []llm.Message{{Role: llm.RoleUser, Text: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "r", turn.Reason)
	assert.Equal(t, "All done", turn.Question)
	assert.True(t, turn.Done)
}

func TestDialogueService_Ask_EmptyHistory(t *testing.T) {
	client := &mockClient{}
	_, err := NewDialogueService(client).Ask(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyHistory)
	assert.Empty(t, client.requests)
}

func TestDialogueService_ClientError(t *testing.T) {
	client := &mockClient{err: llm.ErrTimeout}
	_, err := NewDialogueService(client).Open(context.Background())
	assert.ErrorIs(t, err, llm.ErrTimeout)
}

func TestDialogueService_MissingQuestionIsInvalid(t *testing.T) {
	client := &mockClient{response: `{"reason":"r","question":"   "}`}
	_, err := NewDialogueService(client).Open(context.Background())
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestDialogueService_ProseIsInvalid(t *testing.T) {
	client := &mockClient{response: "Sure! What is the client's name?"}
	_, err := NewDialogueService(client).Open(context.Background())
	assert.True(t, errors.Is(err, llm.ErrInvalidOutput))
}
