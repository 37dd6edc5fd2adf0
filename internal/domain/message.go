package domain

import "time"

// ChatMessage is one append-only entry in a session's chat log. Seq is
// assigned by the store and defines the total order of the log.
type ChatMessage struct {
	Seq       int64
	SessionID string
	Role      MessageRole
	Text      string
	CreatedAt time.Time
}
