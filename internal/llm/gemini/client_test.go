package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"

	"jobpost-backend/internal/llm"
)

func TestGenerateSendsExpectedRequest(t *testing.T) {
	var gotPath, gotKey string
	var body map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"# Senior Engineer"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	resp, err := client.Generate(context.Background(), llm.GenerateRequest{
		Prompt:            "Company Name: Acme\n\nhiring a senior engineer",
		SystemInstruction: "You are an HR specialist.",
		Credential:        "test-key",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text, _ := resp.FirstText(); text != "# Senior Engineer" {
		t.Fatalf("unexpected text %q", text)
	}

	if gotPath != "/"+DefaultModel+":generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected key query param, got %q", gotKey)
	}

	contents := body["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	if got := parts[0].(map[string]any)["text"]; got != "Company Name: Acme\n\nhiring a senior engineer" {
		t.Fatalf("unexpected prompt text %q", got)
	}
	sys := body["systemInstruction"].(map[string]any)["parts"].([]any)
	if got := sys[0].(map[string]any)["text"]; got != "You are an HR specialist." {
		t.Fatalf("unexpected system instruction %q", got)
	}
	cfg := body["generationConfig"].(map[string]any)
	if cfg["temperature"] != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", cfg["temperature"])
	}
	if cfg["maxOutputTokens"] != float64(2048) {
		t.Fatalf("expected maxOutputTokens 2048, got %v", cfg["maxOutputTokens"])
	}
}

func TestGenerateMissingCredentialMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Generate(context.Background(), llm.GenerateRequest{Prompt: "hiring", Credential: "  "})

	var authErr *llm.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no upstream call, got %d", calls.Load())
	}
}

func TestGenerateClassifiesUpstreamErrors(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantAuth bool
		wantMsg  string
	}{
		{
			name:     "invalid key reported as 400",
			status:   http.StatusBadRequest,
			body:     `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			wantAuth: true,
			wantMsg:  "API key not valid. Please pass a valid API key.",
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     `{"error":{"code":403,"message":"Permission denied"}}`,
			wantAuth: true,
			wantMsg:  "Permission denied",
		},
		{
			name:    "quota",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"code":429,"message":"Resource has been exhausted"}}`,
			wantMsg: "Resource has been exhausted",
		},
		{
			name:    "unparseable body",
			status:  http.StatusServiceUnavailable,
			body:    `<html>unavailable</html>`,
			wantMsg: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(WithBaseURL(server.URL))
			_, err := client.Generate(context.Background(), llm.GenerateRequest{Prompt: "p", Credential: "k"})

			if calls.Load() != 1 {
				t.Fatalf("expected exactly one call, got %d", calls.Load())
			}
			if tc.wantAuth {
				var authErr *llm.AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("expected AuthError, got %v", err)
				}
				if authErr.Status != tc.status || authErr.Message != tc.wantMsg {
					t.Fatalf("unexpected auth error %+v", authErr)
				}
				return
			}
			var upErr *llm.UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upErr.Status != tc.status || upErr.Message != tc.wantMsg {
				t.Fatalf("unexpected upstream error %+v", upErr)
			}
		})
	}
}

func TestGenerateNetworkErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client := NewClient(WithBaseURL(base))
	_, err := client.Generate(context.Background(), llm.GenerateRequest{Prompt: "p", Credential: "super-secret-key"})

	var netErr *llm.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if strings.Contains(err.Error(), "super-secret-key") {
		t.Fatalf("error leaks credential: %v", err)
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Generate(ctx, llm.GenerateRequest{Prompt: "p", Credential: "k"})

	var netErr *llm.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestWithModelOverridesPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL+"/"), WithModel("gemini-1.5-pro"))
	resp, err := client.Generate(context.Background(), llm.GenerateRequest{Prompt: "p", Credential: "k"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := resp.FirstText(); ok {
		t.Fatalf("expected no text in empty response")
	}
	if gotPath != "/gemini-1.5-pro:generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}
