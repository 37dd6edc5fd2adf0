package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/intelligence"
	"github.com/charmbracelet/lipgloss"
)

// FormatIntakeWelcome renders the banner shown when an intake starts.
func FormatIntakeWelcome(sessionID string) string {
	var b strings.Builder
	b.WriteString(Header("Proposal intake"))
	b.WriteString("\n")
	b.WriteString(Dim("Session " + sessionID))
	b.WriteString("\n")
	b.WriteString(Dim("Answer each question. /fields shows what has been collected, /render drafts the proposal, /quit leaves."))
	b.WriteString("\n\n")
	return b.String()
}

// FormatTurn renders one dialogue turn: the reasoning, an optional
// recommendation and the question.
func FormatTurn(turn intelligence.DialogueTurn) string {
	var b strings.Builder
	if turn.Reason != "" {
		b.WriteString(Dim(turn.Reason))
		b.WriteString("\n")
	}
	if turn.Recommendation != "" {
		b.WriteString(StylePurple.Render("Suggestion: "))
		b.WriteString(turn.Recommendation)
		b.WriteString("\n")
	}
	b.WriteString(Bold(turn.Question))
	b.WriteString("\n")
	return b.String()
}

// FormatIntakeComplete renders the notice shown after the closing turn.
// extractErr is the extraction failure, if any.
func FormatIntakeComplete(extractErr error) string {
	if extractErr != nil {
		return StyleYellow.Render("Intake complete, but the answers could not be mapped to proposal fields: ") +
			Dim(extractErr.Error()) + "\n"
	}
	return StyleGreen.Render("✔ Intake complete.") + Dim(" Fields extracted; /render drafts the proposal.") + "\n"
}

// FormatFields renders the twelve proposal fields in schema order.
func FormatFields(fields domain.ProposalFields) string {
	values := fields.Values()

	labelWidth := 0
	for _, name := range domain.FieldNames {
		labelWidth = max(labelWidth, len(name))
	}
	valueStyle := lipgloss.NewStyle().Width(72)

	var b strings.Builder
	b.WriteString(RenderProgress(fields.Completion(), 20))
	b.WriteString("\n\n")
	for _, name := range domain.FieldNames {
		label := StyleBlue.Render(fmt.Sprintf("%-*s", labelWidth, name))
		value := strings.TrimSpace(values[name])
		switch {
		case value != "":
			value = valueStyle.Render(value)
		case domain.IsOptionalField(name):
			value = Dim("(optional, not provided)")
		default:
			value = Dim("(empty)")
		}
		indented := strings.ReplaceAll(value, "\n", "\n"+strings.Repeat(" ", labelWidth+2))
		b.WriteString(label + "  " + indented + "\n")
	}
	return RenderBox("Proposal fields", strings.TrimRight(b.String(), "\n"))
}

// FormatSessionList renders sessions as a table.
func FormatSessionList(sessions []*domain.ProposalSession) string {
	if len(sessions) == 0 {
		return Dim("No sessions found.") + "\n"
	}

	headers := []string{"ID", "TITLE", "STATUS", "PROGRESS", "UPDATED"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		title := s.Title
		if title == "" {
			title = Dim("(untitled)")
		} else {
			title = Truncate(title, 40)
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			title,
			StatusPill(s.Status),
			RenderProgress(s.Progress, 10),
			HumanTimestamp(s.UpdatedAt),
		})
	}
	return RenderBox("Sessions", RenderTable(headers, rows))
}

// FormatSessionDetail renders one session's metadata.
func FormatSessionDetail(s *domain.ProposalSession) string {
	title := s.Title
	if title == "" {
		title = Dim("(untitled)")
	}
	document := Dim("not rendered yet")
	if s.HasDocument() {
		document = fmt.Sprintf("%d characters", len(*s.LatestDocument))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID       "), s.ID)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Title    "), title)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Status   "), StatusPill(s.Status))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Progress "), RenderProgress(s.Progress, 20))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Created  "), s.CreatedAt.Format("Jan 2, 2006 15:04"))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Updated  "), HumanTimestamp(s.UpdatedAt))
	fmt.Fprintf(&b, "%s  %s", Dim("Document "), document)
	return RenderBox("Session "+s.DisplayID(), b.String())
}

// FormatHistory renders a chat log in order.
func FormatHistory(msgs []domain.ChatMessage) string {
	if len(msgs) == 0 {
		return Dim("No messages.") + "\n"
	}
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", RoleLabel(m.Role), Dim(m.CreatedAt.Format("15:04")))
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSections lists the stored sections of the latest document.
func FormatSections(sections []domain.ProposalSection) string {
	if len(sections) == 0 {
		return Dim("No sections stored. Render the proposal first.") + "\n"
	}
	rows := make([][]string, 0, len(sections))
	for i, s := range sections {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.Name,
			Dim(Truncate(s.Content, 60)),
		})
	}
	return RenderBox("Sections", RenderTable([]string{"#", "SECTION", "PREVIEW"}, rows))
}
