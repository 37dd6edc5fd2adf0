package intelligence

import (
	"strings"

	"github.com/alexanderramin/proposal/internal/domain"
)

const (
	previousExperiencePlaceholder = "N/A"
	budgetPlaceholder             = "To be discussed"
)

// SectionHeadings lists the document sections in the order the prompt asks for them.
var SectionHeadings = []string{
	"Executive Summary",
	"Problem Statement",
	"Proposed Solution",
	"Previous Experience (if applicable)",
	"Objectives",
	"Implementation Plan",
	"Benefits for the Client",
	"Timeline",
	"Budget Overview",
	"Deliverables",
	"Technologies",
}

const documentClosing = "Write in a professional tone, using clear section headings and bullet points where appropriate.\n" +
	"Ensure the proposal flows logically from problem identification to solution implementation."

// StyleToneInstruction renders the optional regenerate modifiers as a single
// instruction line, omitting whichever part is empty.
func StyleToneInstruction(style, tone string) string {
	var parts []string
	if s := strings.TrimSpace(style); s != "" {
		parts = append(parts, "Style: "+s+".")
	}
	if t := strings.TrimSpace(tone); t != "" {
		parts = append(parts, "Tone: "+t+".")
	}
	return strings.Join(parts, " ")
}

// BuildProposalPrompt builds the generation prompt for a session's fields.
// Missing optional fields use their placeholders. A non-empty extra
// instruction is placed just before the closing writing guidance.
func BuildProposalPrompt(f domain.ProposalFields, extra string) string {
	prev := domain.CoalesceStr(strings.TrimSpace(domain.StrFromPtr(f.PreviousExperience)), previousExperiencePlaceholder)
	budget := domain.CoalesceStr(strings.TrimSpace(domain.StrFromPtr(f.Budget)), budgetPlaceholder)

	var b strings.Builder
	b.WriteString("You are a professional technical writer.\n\n")
	b.WriteString("Write a detailed project proposal using the following structure:\n\n")

	section := func(heading, lead, body string) {
		b.WriteString("# ")
		b.WriteString(heading)
		b.WriteString("\n")
		if lead != "" {
			b.WriteString(lead)
			b.WriteString("\n")
		}
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	section(SectionHeadings[0], "Provide a concise overview of the proposal's key points, including:",
		"- Client: "+f.ClientName+"\n- Project: "+f.ProjectTitle+"\n- Main objectives: "+f.Objectives)
	section(SectionHeadings[1], "Clearly define the problem or opportunity:", f.ProblemStatement)
	section(SectionHeadings[2], "Describe the plan in detail:", f.ProposedSolution)
	section(SectionHeadings[3], "", prev)
	section(SectionHeadings[4], "Outline the benefits:", f.Objectives)
	section(SectionHeadings[5], "Explain how the solution will be implemented:", f.ImplementationPlan)
	section(SectionHeadings[6], "Detail the positive outcomes:", f.Benefits)
	section(SectionHeadings[7], "Project schedule:", f.Timeline)
	section(SectionHeadings[8], "", budget)
	section(SectionHeadings[9], "", f.Deliverables)
	section(SectionHeadings[10], "", f.Technologies)

	if extra = strings.TrimSpace(extra); extra != "" {
		b.WriteString(extra)
		b.WriteString("\n\n")
	}
	b.WriteString(documentClosing)
	return b.String()
}
