package profiles

import (
	"strings"
	"time"
)

// Record is the stored row. SealedKey is the Box-sealed Gemini API key.
type Record struct {
	ID        string
	UserID    string
	SealedKey string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is what the API returns. The key itself never leaves the server.
type View struct {
	UserID           string    `json:"user_id"`
	HasGeminiAPIKey  bool      `json:"hasGeminiApiKey"`
	GeminiAPIKeyHint string    `json:"geminiApiKeyHint,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// maskKey keeps the last four characters.
func maskKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return "..." + key[len(key)-4:]
}
