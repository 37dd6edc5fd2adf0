package domain

import (
	"strings"
	"time"
)

// ProposalSection is one headed section of the latest rendered document.
type ProposalSection struct {
	ID        int64
	SessionID string
	Name      string
	Content   string
	UpdatedAt time.Time
}

// SplitSections breaks a markdown document into sections at its level-one
// and level-two headings. Text before the first heading is dropped, as are
// headings with no body.
func SplitSections(sessionID, doc string, now time.Time) []ProposalSection {
	var sections []ProposalSection
	var name string
	var body []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		if name != "" && content != "" {
			sections = append(sections, ProposalSection{
				SessionID: sessionID,
				Name:      name,
				Content:   content,
				UpdatedAt: now,
			})
		}
		body = body[:0]
	}

	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if heading, ok := sectionHeading(trimmed); ok {
			flush()
			name = heading
			continue
		}
		if name != "" {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

func sectionHeading(line string) (string, bool) {
	for _, prefix := range []string{"## ", "# "} {
		if strings.HasPrefix(line, prefix) {
			heading := strings.TrimSpace(strings.Trim(strings.TrimPrefix(line, prefix), "*"))
			return heading, heading != ""
		}
	}
	return "", false
}
