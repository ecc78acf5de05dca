package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	ServiceName        string
	CORSAllowOrigins   []string
	DatabaseURL        string
	GeminiModel        string
	GeminiBaseURL      string
	ScrapingDogAPIKey  string
	ScrapingDogBaseURL string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
	ProfileSecret      string
}

var (
	// ErrMissingDatabaseURL is returned by Validate in production without DATABASE_URL.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required in production")
	// ErrInvalidCORSOrigin is returned by Validate for an origin without an http(s) scheme.
	ErrInvalidCORSOrigin = errors.New("cors origin must start with http:// or https://")
)

// Load reads configuration from environment variables with sensible defaults.
// Local .env files are loaded best-effort and never override the real environment.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	origins := getEnv("CORS_ALLOW_ORIGINS", os.Getenv("CLIENT_URL"))

	return Config{
		Port:               getEnv("PORT", "3001"),
		Env:                normalizeEnv(getEnv("ENV", os.Getenv("NODE_ENV"))),
		ServiceName:        getEnv("SERVICE_NAME", "jobpost-backend"),
		CORSAllowOrigins:   splitAndTrim(origins),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		GeminiModel:        getEnv("GEMINI_MODEL", ""),
		GeminiBaseURL:      getEnv("GEMINI_API_BASE_URL", ""),
		ScrapingDogAPIKey:  getEnv("SCRAPINGDOG_API_KEY", ""),
		ScrapingDogBaseURL: getEnv("SCRAPINGDOG_BASE_URL", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
		ProfileSecret:      getEnv("PROFILE_SECRET", ""),
	}
}

// Validate reports configuration that cannot start a server.
func (c Config) Validate() error {
	if c.Env == "production" && c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	for _, o := range c.CORSAllowOrigins {
		if o == "*" || strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://") {
			continue
		}
		return errors.Wrapf(ErrInvalidCORSOrigin, "origin %q", o)
	}
	return nil
}

// AllowAllOrigins reports whether CORS should accept any origin.
func (c Config) AllowAllOrigins() bool {
	if len(c.CORSAllowOrigins) == 0 {
		return true
	}
	for _, o := range c.CORSAllowOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func loadEnvFiles(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		// godotenv.Load keeps variables already present in the environment.
		_ = godotenv.Load(p)
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "test":
		return "test"
	default:
		return "dev"
	}
}
