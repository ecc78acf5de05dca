package jobposts

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"jobpost-backend/internal/credentials"
	"jobpost-backend/internal/llm"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []llm.GenerateRequest
	resp  *llm.Response
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestGenerateRejectsBlankPromptBeforeCall(t *testing.T) {
	gen := &fakeGenerator{resp: responseWithText("# T")}
	svc := &Service{Generator: gen}

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := svc.Generate(context.Background(), GenerateInput{Prompt: prompt, AccessToken: "k"})
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != FieldPrompt {
			t.Fatalf("prompt %q: expected prompt ValidationError, got %v", prompt, err)
		}
	}
	if gen.callCount() != 0 {
		t.Fatalf("expected no provider calls, got %d", gen.callCount())
	}
}

func TestGenerateRequiresCredentialBeforeCall(t *testing.T) {
	gen := &fakeGenerator{resp: responseWithText("# T")}
	svc := &Service{Generator: gen}

	_, err := svc.Generate(context.Background(), GenerateInput{Prompt: "hiring", AccessToken: "  "})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != FieldAccessToken {
		t.Fatalf("expected accessToken ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is ErrValidation")
	}
	if gen.callCount() != 0 {
		t.Fatalf("expected no provider calls, got %d", gen.callCount())
	}
}

func TestGenerateBuildsSingleRequest(t *testing.T) {
	gen := &fakeGenerator{resp: responseWithText("```markdown\n# Acme is hiring\n```")}
	svc := &Service{Generator: gen, Model: "gemini-test"}

	res, err := svc.Generate(context.Background(), GenerateInput{
		Prompt:           "senior engineer",
		AccessToken:      "key-1",
		OrganizationData: &OrganizationContext{Name: "Acme"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Content != "# Acme is hiring" {
		t.Fatalf("unexpected content %q", res.Content)
	}
	if gen.callCount() != 1 {
		t.Fatalf("expected exactly one call, got %d", gen.callCount())
	}
	req := gen.calls[0]
	if req.Prompt != "Company Name: Acme\n\nsenior engineer" {
		t.Fatalf("unexpected prompt %q", req.Prompt)
	}
	if req.SystemInstruction != SystemInstruction {
		t.Fatalf("system instruction not sent")
	}
	if req.Credential != "key-1" || req.Model != "gemini-test" {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Temperature != 0.7 || req.MaxOutputTokens != 2048 {
		t.Fatalf("unexpected generation config %+v", req)
	}
}

type stubProvider struct {
	key string
}

func (s stubProvider) HasCredential(context.Context) bool { return s.key != "" }

func (s stubProvider) AcquireCredential(context.Context) (credentials.Credential, error) {
	return credentials.Credential{APIKey: s.key, Source: credentials.SourceProfile}, nil
}

func TestGenerateUsesFallbackProvider(t *testing.T) {
	gen := &fakeGenerator{resp: responseWithText("# T")}
	svc := &Service{Generator: gen, Fallback: stubProvider{key: "stored"}}

	if _, err := svc.Generate(context.Background(), GenerateInput{Prompt: "p"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.calls[0].Credential != "stored" {
		t.Fatalf("expected stored credential, got %q", gen.calls[0].Credential)
	}

	if _, err := svc.Generate(context.Background(), GenerateInput{Prompt: "p", AccessToken: "explicit"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.calls[1].Credential != "explicit" {
		t.Fatalf("expected request token to win, got %q", gen.calls[1].Credential)
	}
}

func TestGenerateFallbackContent(t *testing.T) {
	gen := &fakeGenerator{resp: &llm.Response{}}
	svc := &Service{Generator: gen}

	res, err := svc.Generate(context.Background(), GenerateInput{Prompt: "p", AccessToken: "k"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Content != FallbackContent {
		t.Fatalf("expected fallback content, got %q", res.Content)
	}
}

func TestGenerateKeepsProviderErrorType(t *testing.T) {
	gen := &fakeGenerator{err: &llm.UpstreamError{Status: 429, Message: "quota"}}
	svc := &Service{Generator: gen}

	_, err := svc.Generate(context.Background(), GenerateInput{Prompt: "p", AccessToken: "k"})
	var upErr *llm.UpstreamError
	if !errors.As(err, &upErr) || upErr.Status != 429 {
		t.Fatalf("expected UpstreamError 429, got %v", err)
	}
	if gen.callCount() != 1 {
		t.Fatalf("expected no retry, got %d calls", gen.callCount())
	}
}
