package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"jobpost-backend/internal/llm"
	"jobpost-backend/internal/shared/telemetry"
)

const (
	DefaultModel           = "gemini-2.0-flash-001"
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 2048

	maxErrorBody = 1 << 20
)

var apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client implements llm.Generator against the generateContent REST endpoint.
// It makes exactly one outbound call per Generate and never retries.
type Client struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(c *Client) {
		if m := strings.TrimSpace(model); m != "" {
			c.model = m
		}
	}
}

// WithBaseURL points the client at another models endpoint.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if b := strings.TrimRight(strings.TrimSpace(base), "/"); b != "" {
			c.baseURL = b
		}
	}
}

// WithHTTPClient replaces the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient constructs a client. No request timeout is set; cancellation
// follows the caller's context.
func NewClient(opts ...Option) *Client {
	c := &Client{
		model:      DefaultModel,
		baseURL:    apiBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type errorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends one generateContent call. Missing credentials fail before
// any network activity.
func (c *Client) Generate(ctx context.Context, in llm.GenerateRequest) (*llm.Response, error) {
	key := strings.TrimSpace(in.Credential)
	if key == "" {
		return nil, llm.ErrMissingCredential
	}
	model := c.model
	if m := strings.TrimSpace(in.Model); m != "" {
		model = m
	}

	ctx, span := otel.Tracer("jobpost-backend/llm/gemini").Start(ctx, "gemini.generateContent", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", model))

	payload, err := json.Marshal(buildRequest(in))
	if err != nil {
		return nil, errors.Wrap(err, "encode gemini request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(model, key), bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build gemini request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, &llm.NetworkError{Err: stripURL(err)}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := upstreamMessage(body)
		span.SetStatus(codes.Error, msg)
		telemetry.Warn("gemini.error", map[string]any{
			"model":   model,
			"status":  resp.StatusCode,
			"message": msg,
		})
		return nil, llm.ClassifyStatus(resp.StatusCode, msg)
	}

	var out llm.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if ctx.Err() != nil {
			return nil, &llm.NetworkError{Err: ctx.Err()}
		}
		return nil, errors.Wrap(err, "decode gemini response")
	}
	logUsage(model, out.UsageMetadata)
	return &out, nil
}

func buildRequest(in llm.GenerateRequest) generateContentRequest {
	temp := in.Temperature
	if temp == 0 {
		temp = DefaultTemperature
	}
	maxTokens := in.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxOutputTokens
	}
	body := generateContentRequest{
		Contents:         []content{{Parts: []part{{Text: in.Prompt}}}},
		GenerationConfig: generationConfig{Temperature: temp, MaxOutputTokens: maxTokens},
	}
	if in.SystemInstruction != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: in.SystemInstruction}}}
	}
	return body
}

func (c *Client) endpoint(model, key string) string {
	q := url.Values{}
	q.Set("key", key)
	return c.baseURL + "/" + url.PathEscape(model) + ":generateContent?" + q.Encode()
}

func upstreamMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
		if msg := strings.TrimSpace(parsed.Error.Message); msg != "" {
			return msg
		}
	}
	return ""
}

// stripURL drops the request URL, which carries the API key, from transport errors.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func logUsage(model string, usage *llm.UsageMetadata) {
	fields := map[string]any{"model": model}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokenCount
		fields["candidate_tokens"] = usage.CandidatesTokenCount
		fields["total_tokens"] = usage.TotalTokenCount
	}
	telemetry.Info("gemini.response", fields)
}

var _ llm.Generator = (*Client)(nil)
