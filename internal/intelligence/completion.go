package intelligence

import "strings"

const (
	donePhrase = "all done"
	doneReason = "all fields have been successfully collected."
)

// IsComplete decides whether a dialogue turn ends the intake. The dialogue
// model is inconsistent about how it signals the end, so any of an explicit
// done flag, "all done" anywhere in the question, or the canonical closing
// reason counts. Matching is case-insensitive.
//
// No minimum number of answered questions is required.
func IsComplete(turn DialogueTurn) bool {
	if turn.Done {
		return true
	}
	if strings.Contains(strings.ToLower(turn.Question), donePhrase) {
		return true
	}
	return strings.ToLower(strings.TrimSpace(turn.Reason)) == doneReason
}
