package jobposts

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"jobpost-backend/internal/credentials"
	"jobpost-backend/internal/llm"
	"jobpost-backend/internal/shared/metrics"
	"jobpost-backend/internal/shared/telemetry"
)

const (
	Temperature     = 0.7
	MaxOutputTokens = 2048
)

// GenerateInput is the body of a generation request.
type GenerateInput struct {
	Prompt           string               `json:"prompt"`
	AccessToken      string               `json:"accessToken"`
	OrganizationData *OrganizationContext `json:"organizationData,omitempty"`
}

// Result is the normalized generation output.
type Result struct {
	Content string `json:"content"`
}

// Service runs the enrich, generate and normalize pipeline. It keeps no
// per-request state, so concurrent calls are independent.
type Service struct {
	Generator llm.Generator
	// Model overrides the generator's default model when set.
	Model string
	// Fallback is consulted when the request carries no accessToken.
	Fallback credentials.Provider
}

// Generate validates input, resolves a credential and makes exactly one
// provider call. Validation failures never reach the provider.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (Result, error) {
	if strings.TrimSpace(in.Prompt) == "" {
		return Result{}, errPromptRequired
	}

	cred, err := s.credential(ctx, in.AccessToken)
	if err != nil {
		return Result{}, err
	}

	enhanced := Enrich(in.Prompt, in.OrganizationData)
	metrics.IncGenerationStarted()
	start := time.Now()

	resp, err := s.Generator.Generate(ctx, llm.GenerateRequest{
		Prompt:            enhanced,
		SystemInstruction: SystemInstruction,
		Credential:        cred.APIKey,
		Model:             s.Model,
		Temperature:       Temperature,
		MaxOutputTokens:   MaxOutputTokens,
	})
	metrics.ObserveGenerationDuration(time.Since(start))
	if err != nil {
		metrics.IncGenerationFailed()
		return Result{}, errors.WithMessage(err, "generate job post")
	}

	content := Normalize(resp)
	fallback := IsFallback(content)
	if fallback {
		metrics.IncGenerationFallback()
	}
	metrics.IncGenerationCompleted()
	telemetry.Info("jobpost.generated", map[string]any{
		"credential_source": string(cred.Source),
		"org_lines":         len(in.OrganizationData.Lines()),
		"prompt_chars":      len(in.Prompt),
		"content_chars":     len(content),
		"fallback":          fallback,
		"duration_ms":       time.Since(start).Milliseconds(),
	})
	return Result{Content: content}, nil
}

func (s *Service) credential(ctx context.Context, accessToken string) (credentials.Credential, error) {
	chain := credentials.Chain{credentials.FromRequest(accessToken)}
	if s.Fallback != nil {
		chain = append(chain, s.Fallback)
	}
	cred, err := chain.AcquireCredential(ctx)
	if errors.Is(err, credentials.ErrAuthCancelled) {
		return credentials.Credential{}, errAPIKeyRequired
	}
	if err != nil {
		return credentials.Credential{}, errors.Wrap(err, "acquire credential")
	}
	return cred, nil
}
