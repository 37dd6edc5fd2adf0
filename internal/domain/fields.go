package domain

import "strings"

// ProposalFields is the fixed 12-field proposal schema collected during intake.
// PreviousExperience and Budget are optional; every other field is required
// by the schema, although nothing enforces that they are non-empty.
type ProposalFields struct {
	ClientName         string  `json:"client_name"`
	ProjectTitle       string  `json:"project_title"`
	ProblemStatement   string  `json:"problem_statement"`
	ProposedSolution   string  `json:"proposed_solution"`
	PreviousExperience *string `json:"previous_experience"`
	Objectives         string  `json:"objectives"`
	ImplementationPlan string  `json:"implementation_plan"`
	Benefits           string  `json:"benefits"`
	Timeline           string  `json:"timeline"`
	Budget             *string `json:"budget"`
	Deliverables       string  `json:"deliverables"`
	Technologies       string  `json:"technologies"`
}

// FieldNames lists the schema fields in collection order.
var FieldNames = []string{
	"client_name",
	"project_title",
	"problem_statement",
	"proposed_solution",
	"previous_experience",
	"objectives",
	"implementation_plan",
	"benefits",
	"timeline",
	"budget",
	"deliverables",
	"technologies",
}

// FieldDescriptions documents each field for prompts and schemas.
var FieldDescriptions = map[string]string{
	"client_name":         "Client's name or organization",
	"project_title":       "Title of the project",
	"problem_statement":   "The problem or opportunity being addressed",
	"proposed_solution":   "Detailed description of the proposed solution",
	"previous_experience": "Relevant previous projects or experience",
	"objectives":          "Benefits and objectives of the solution",
	"implementation_plan": "How the solution will be implemented",
	"benefits":            "Advantages for the recipient",
	"timeline":            "Project schedule with milestones",
	"budget":              "High-level budget overview",
	"deliverables":        "What will be delivered",
	"technologies":        "Technologies to be used",
}

// IsOptionalField reports whether the named field may be absent.
func IsOptionalField(name string) bool {
	return name == "previous_experience" || name == "budget"
}

// Values returns the field values keyed by schema name. Absent optional
// fields map to the empty string.
func (f ProposalFields) Values() map[string]string {
	return map[string]string{
		"client_name":         f.ClientName,
		"project_title":       f.ProjectTitle,
		"problem_statement":   f.ProblemStatement,
		"proposed_solution":   f.ProposedSolution,
		"previous_experience": StrFromPtr(f.PreviousExperience),
		"objectives":          f.Objectives,
		"implementation_plan": f.ImplementationPlan,
		"benefits":            f.Benefits,
		"timeline":            f.Timeline,
		"budget":              StrFromPtr(f.Budget),
		"deliverables":        f.Deliverables,
		"technologies":        f.Technologies,
	}
}

// Completion returns the percentage of schema fields holding a non-blank value.
func (f ProposalFields) Completion() int {
	values := f.Values()
	filled := 0
	for _, name := range FieldNames {
		if strings.TrimSpace(values[name]) != "" {
			filled++
		}
	}
	return filled * 100 / len(FieldNames)
}
