package domain

type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionInactive SessionStatus = "inactive"
	SessionArchived SessionStatus = "archived"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Valid reports whether r is one of the two roles stored in the chat log.
func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}
