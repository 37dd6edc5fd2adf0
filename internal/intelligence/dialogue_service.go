package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/proposal/internal/llm"
)

// DialogueTurn is one reply from the dialogue model.
type DialogueTurn struct {
	Reason         string `json:"reason"`
	Question       string `json:"question"`
	Recommendation string `json:"recommendation,omitempty"`
	Done           bool   `json:"done"`
}

// dialogueTurnResponse is the JSON structure the LLM outputs at each turn.
// Optional fields are pointers so that an explicit null is accepted.
type dialogueTurnResponse struct {
	Reason         string  `json:"reason"`
	Question       string  `json:"question"`
	Recommendation *string `json:"recommendation"`
	Done           *bool   `json:"done"`
}

var dialogueSchema = &llm.JSONSchema{Properties: []llm.JSONProperty{
	{Name: "reason", Type: llm.PropertyString, Description: "One-line reasoning behind the question", Required: true},
	{Name: "question", Type: llm.PropertyString, Description: "The next question for the user", Required: true},
	{Name: "recommendation", Type: llm.PropertyString, Description: "Optional suggested answer"},
	{Name: "done", Type: llm.PropertyBoolean, Description: "True once every proposal field is collected"},
}}

// DialogueService asks the hosted dialogue model for the next intake question.
type DialogueService interface {
	// Open asks for the first question using only the fixed instructions.
	Open(ctx context.Context) (*DialogueTurn, error)

	// Ask sends the reconstructed conversation and returns the next turn.
	Ask(ctx context.Context, history []llm.Message) (*DialogueTurn, error)
}

type dialogueService struct {
	client llm.LLMClient
}

// NewDialogueService creates a DialogueService backed by an LLM client.
func NewDialogueService(client llm.LLMClient) DialogueService {
	return &dialogueService{client: client}
}

func (s *dialogueService) Open(ctx context.Context) (*DialogueTurn, error) {
	return s.generate(ctx, nil)
}

func (s *dialogueService) Ask(ctx context.Context, history []llm.Message) (*DialogueTurn, error) {
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}
	return s.generate(ctx, history)
}

func (s *dialogueService) generate(ctx context.Context, history []llm.Message) (*DialogueTurn, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDialogue,
		SystemPrompt: intakeSystemPrompt,
		Messages:     history,
		Schema:       dialogueSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("llm dialogue failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[dialogueTurnResponse](resp.Text, validateDialogueTurnResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract dialogue turn: %w", err)
	}

	turn := &DialogueTurn{
		Reason:   strings.TrimSpace(parsed.Reason),
		Question: strings.TrimSpace(parsed.Question),
	}
	if parsed.Recommendation != nil {
		turn.Recommendation = strings.TrimSpace(*parsed.Recommendation)
	}
	if parsed.Done != nil {
		turn.Done = *parsed.Done
	}
	return turn, nil
}

func validateDialogueTurnResponse(resp dialogueTurnResponse) error {
	if strings.TrimSpace(resp.Question) == "" {
		return errors.New("question field is required")
	}
	return nil
}
