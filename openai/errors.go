package openai

import "fmt"

// AuthError indicates the API key was rejected. It aborts a classification
// batch before any per-message work starts.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("openai auth error: %s", e.Message)
}

// ModelError indicates a completion call failed or returned an unusable
// response. Callers recover from it per message; it is never batch-fatal.
type ModelError struct {
	StatusCode int
	Message    string
}

func (e *ModelError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("openai model error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("openai model error: %s", e.Message)
}
