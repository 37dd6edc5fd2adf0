package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/llm"
)

// ExtractionError reports a failed structured extraction. Callers treat it
// as non-fatal; the session keeps its previous field values.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("proposal extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractionService maps a finished intake conversation onto the proposal schema.
type ExtractionService interface {
	Extract(ctx context.Context, history []llm.Message) (domain.ProposalFields, error)
}

type extractionService struct {
	client llm.LLMClient
}

// NewExtractionService creates an ExtractionService backed by an LLM client.
func NewExtractionService(client llm.LLMClient) ExtractionService {
	return &extractionService{client: client}
}

func (s *extractionService) Extract(ctx context.Context, history []llm.Message) (domain.ProposalFields, error) {
	if len(history) == 0 {
		return domain.ProposalFields{}, &ExtractionError{Err: ErrEmptyHistory}
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtraction,
		SystemPrompt: extractionSystemPrompt,
		Messages:     history,
		UserPrompt:   extractionUserPrompt,
		Schema:       proposalSchema(),
	})
	if err != nil {
		return domain.ProposalFields{}, &ExtractionError{Err: err}
	}

	fields, err := llm.ExtractJSON[domain.ProposalFields](resp.Text, nil)
	if err != nil {
		return domain.ProposalFields{}, &ExtractionError{Err: err}
	}
	return normalizeFields(fields), nil
}

// proposalSchema builds the extraction schema from the domain field list.
func proposalSchema() *llm.JSONSchema {
	props := make([]llm.JSONProperty, 0, len(domain.FieldNames))
	for _, name := range domain.FieldNames {
		props = append(props, llm.JSONProperty{
			Name:        name,
			Type:        llm.PropertyString,
			Description: domain.FieldDescriptions[name],
			Required:    !domain.IsOptionalField(name),
		})
	}
	return &llm.JSONSchema{Properties: props}
}

// normalizeFields trims every value and turns blank optional fields into nil.
func normalizeFields(f domain.ProposalFields) domain.ProposalFields {
	trim := strings.TrimSpace
	return domain.ProposalFields{
		ClientName:         trim(f.ClientName),
		ProjectTitle:       trim(f.ProjectTitle),
		ProblemStatement:   trim(f.ProblemStatement),
		ProposedSolution:   trim(f.ProposedSolution),
		PreviousExperience: domain.StrPtrOrNil(trim(domain.StrFromPtr(f.PreviousExperience))),
		Objectives:         trim(f.Objectives),
		ImplementationPlan: trim(f.ImplementationPlan),
		Benefits:           trim(f.Benefits),
		Timeline:           trim(f.Timeline),
		Budget:             domain.StrPtrOrNil(trim(domain.StrFromPtr(f.Budget))),
		Deliverables:       trim(f.Deliverables),
		Technologies:       trim(f.Technologies),
	}
}
