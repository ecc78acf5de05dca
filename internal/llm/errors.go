package llm

import (
	"fmt"
	"strings"
)

// AuthError reports a missing credential or one the provider rejected.
// Status is zero when no call was made.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return "llm auth: " + e.Message
	}
	return fmt.Sprintf("llm auth (status %d): %s", e.Status, e.Message)
}

// UpstreamError is a non-success response from the provider.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm upstream (status %d): %s", e.Status, e.Message)
}

// NetworkError means the call could not complete at the transport level.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "llm network: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ErrMissingCredential is returned before any call when no key is supplied.
var ErrMissingCredential = &AuthError{Message: "API key is required"}

// ClassifyStatus turns a non-success status and upstream message into an
// AuthError or UpstreamError.
func ClassifyStatus(status int, message string) error {
	if status == 401 || status == 403 || mentionsAPIKey(message) {
		return &AuthError{Status: status, Message: message}
	}
	return &UpstreamError{Status: status, Message: message}
}

func mentionsAPIKey(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "api key") || strings.Contains(m, "api_key")
}
