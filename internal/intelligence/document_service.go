package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/llm"
)

// DocumentService turns collected proposal fields into prose.
type DocumentService interface {
	// Generate builds the proposal prompt with an optional extra instruction
	// and returns the model's document text.
	Generate(ctx context.Context, fields domain.ProposalFields, extra string) (string, error)
}

type documentService struct {
	client llm.LLMClient
}

// NewDocumentService creates a DocumentService backed by an LLM client.
func NewDocumentService(client llm.LLMClient) DocumentService {
	return &documentService{client: client}
}

func (s *documentService) Generate(ctx context.Context, fields domain.ProposalFields, extra string) (string, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskGeneration,
		UserPrompt: BuildProposalPrompt(fields, extra),
	})
	if err != nil {
		return "", fmt.Errorf("llm proposal generation failed: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
