package intelligence

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledFields() domain.ProposalFields {
	exp := "Built three portals"
	budget := "$150,000"
	return domain.ProposalFields{
		ClientName:         "Acme Corp",
		ProjectTitle:       "Website Redesign",
		ProblemStatement:   "Outdated site",
		ProposedSolution:   "New CMS",
		PreviousExperience: &exp,
		Objectives:         "More leads",
		ImplementationPlan: "Three phases",
		Benefits:           "Higher conversion",
		Timeline:           "Q1 to Q3",
		Budget:             &budget,
		Deliverables:       "Site and docs",
		Technologies:       "Go, React",
	}
}

func TestBuildProposalPrompt_SectionOrder(t *testing.T) {
	prompt := BuildProposalPrompt(domain.ProposalFields{}, "")

	last := -1
	for _, h := range SectionHeadings {
		idx := strings.Index(prompt, "# "+h+"\n")
		require.GreaterOrEqual(t, idx, 0, "missing heading %q", h)
		assert.Greater(t, idx, last, "heading %q out of order", h)
		last = idx
	}
	assert.True(t, strings.HasPrefix(prompt, "You are a professional technical writer.\n\n"))
	assert.True(t, strings.HasSuffix(prompt, "from problem identification to solution implementation."))
}

func TestBuildProposalPrompt_Placeholders(t *testing.T) {
	prompt := BuildProposalPrompt(domain.ProposalFields{ClientName: "Acme Corp"}, "")

	assert.Contains(t, prompt, "# Previous Experience (if applicable)\nN/A\n")
	assert.Contains(t, prompt, "# Budget Overview\nTo be discussed\n")
	assert.Contains(t, prompt, "- Client: Acme Corp\n")
}

func TestBuildProposalPrompt_BlankOptionalUsesPlaceholder(t *testing.T) {
	blank := "   "
	prompt := BuildProposalPrompt(domain.ProposalFields{PreviousExperience: &blank, Budget: &blank}, "")
	assert.Contains(t, prompt, "# Previous Experience (if applicable)\nN/A\n")
	assert.Contains(t, prompt, "# Budget Overview\nTo be discussed\n")
}

func TestBuildProposalPrompt_SubstitutesValues(t *testing.T) {
	prompt := BuildProposalPrompt(filledFields(), "")

	assert.Contains(t, prompt, "- Project: Website Redesign\n- Main objectives: More leads\n")
	assert.Contains(t, prompt, "# Problem Statement\nClearly define the problem or opportunity:\nOutdated site\n")
	assert.Contains(t, prompt, "# Previous Experience (if applicable)\nBuilt three portals\n")
	assert.Contains(t, prompt, "# Budget Overview\n$150,000\n")
	assert.Contains(t, prompt, "# Technologies\nGo, React\n")
	assert.NotContains(t, prompt, "N/A")
}

func TestBuildProposalPrompt_ExtraBeforeClosing(t *testing.T) {
	prompt := BuildProposalPrompt(filledFields(), "Keep it under two pages.")

	extra := strings.Index(prompt, "Keep it under two pages.")
	closing := strings.Index(prompt, "Write in a professional tone")
	tech := strings.Index(prompt, "# Technologies")
	require.Positive(t, extra)
	assert.Less(t, tech, extra)
	assert.Less(t, extra, closing)
}

func TestBuildProposalPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildProposalPrompt(filledFields(), "x"), BuildProposalPrompt(filledFields(), "x"))
}

func TestStyleToneInstruction(t *testing.T) {
	assert.Equal(t, "", StyleToneInstruction("", ""))
	assert.Equal(t, "Style: formal.", StyleToneInstruction("formal", ""))
	assert.Equal(t, "Tone: friendly.", StyleToneInstruction(" ", "friendly"))
	assert.Equal(t, "Style: formal. Tone: friendly.", StyleToneInstruction("formal", "friendly"))
}

func TestDocumentService_Generate(t *testing.T) {
	client := &mockClient{response: "\n# Executive Summary\nAcme...\n"}
	svc := NewDocumentService(client)

	doc, err := svc.Generate(context.Background(), filledFields(), "Style: formal.")
	require.NoError(t, err)
	assert.Equal(t, "# Executive Summary\nAcme...", doc)

	req := client.lastReq()
	assert.Equal(t, llm.TaskGeneration, req.Task)
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.UserPrompt, "Style: formal.")
}

func TestDocumentService_Generate_Error(t *testing.T) {
	client := &mockClient{err: llm.ErrEmptyResponse}
	_, err := NewDocumentService(client).Generate(context.Background(), filledFields(), "")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}
