package intelligence

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/llm"
)

// DefaultOpeningMessage is the user turn synthesized for a history that has
// none, since the dialogue model needs at least one user message to answer.
const DefaultOpeningMessage = "Hello, let's start the proposal."

// ErrEmptyHistory is returned when there is no conversation to replay.
var ErrEmptyHistory = errors.New("chat history is empty")

// ReconstructHistory converts a session's chat log, already in sequence
// order, into model messages. When the log holds no user message a default
// opening message is prepended; otherwise content and order are unchanged.
func ReconstructHistory(log []domain.ChatMessage) ([]llm.Message, error) {
	hasUser := false
	for _, m := range log {
		if m.Role == domain.RoleUser {
			hasUser = true
			break
		}
	}

	msgs := make([]llm.Message, 0, len(log)+1)
	if !hasUser {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Text: DefaultOpeningMessage})
	}
	for _, m := range log {
		switch m.Role {
		case domain.RoleUser:
			msgs = append(msgs, llm.Message{Role: llm.RoleUser, Text: m.Text})
		case domain.RoleAssistant:
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Text: m.Text})
		default:
			return nil, fmt.Errorf("message %d: unsupported role %q", m.Seq, m.Role)
		}
	}

	if len(msgs) == 0 {
		return nil, ErrEmptyHistory
	}
	return msgs, nil
}
