package jobposts

import "github.com/pkg/errors"

// ErrValidation matches every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is raised before any external call when a request is
// unusable. Message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

const (
	FieldPrompt      = "prompt"
	FieldAccessToken = "accessToken"
)

var (
	errPromptRequired = &ValidationError{Field: FieldPrompt, Message: "Prompt is required"}
	errAPIKeyRequired = &ValidationError{Field: FieldAccessToken, Message: "API key is required"}
)
