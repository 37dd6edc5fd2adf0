package service

import "fmt"

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ModelUnavailableError reports a hosted model call that failed or returned
// nothing usable. Role is the model role: dialogue or generation.
type ModelUnavailableError struct {
	Role string
	Err  error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("%s model unavailable: %v", e.Role, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }
