package intelligence

import "strings"

// FormatTurnText renders a dialogue turn as the plain-text reply shown to
// intake clients: a reasoning block, an optional recommendation block, then
// the question.
func FormatTurnText(turn DialogueTurn) string {
	parts := []string{"[REASONING]\n" + turn.Reason}
	if turn.Recommendation != "" {
		parts = append(parts, "\n[RECOMMENDATION]\n"+turn.Recommendation)
	}
	parts = append(parts, "\n"+turn.Question)
	return strings.Join(parts, "\n\n")
}
