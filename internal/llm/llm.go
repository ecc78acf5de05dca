package llm

import (
	"context"
)

// Generator abstracts text-generation providers for job post drafting.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Response, error)
}

// GenerateRequest is one generation call. The credential travels with the
// request because every caller brings their own API key. Zero Temperature
// and MaxOutputTokens select the provider defaults.
type GenerateRequest struct {
	Prompt            string
	SystemInstruction string
	Credential        string
	Model             string
	Temperature       float64
	MaxOutputTokens   int
}

// Response mirrors the generateContent response body. Every level may be
// missing; callers must not assume a candidate or part exists.
type Response struct {
	Candidates    []Candidate    `json:"candidates"`
	UsageMetadata *UsageMetadata `json:"usageMetadata,omitempty"`
	ModelVersion  string         `json:"modelVersion,omitempty"`
}

type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

type Part struct {
	Text string `json:"text"`
}

type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// FirstText returns the text of the first part of the first candidate.
func (r *Response) FirstText() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	return content.Parts[0].Text, true
}
