package jobposts

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"jobpost-backend/internal/llm"
	"jobpost-backend/internal/shared/server/respond"
	"jobpost-backend/internal/shared/telemetry"
)

const (
	msgInvalidAPIKey   = "Invalid API key. Please check your API key and try again."
	msgUpstreamFailed  = "Failed to generate content. Please check your API key."
	msgGenerateFailed  = "Failed to generate job post. Please try again."
	msgTokenRequired   = "Access token is required"
	msgInvalidJSONBody = "Invalid request body"
)

// Handler exposes the generation pipeline over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler builds a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-job-post", h.generate)
	rg.POST("/detect-fields", h.detect)
	rg.POST("/verify-token", h.verifyToken)
}

func (h *Handler) generate(c *gin.Context) {
	var in GenerateInput
	if !bindOptionalJSON(c, &in) {
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), in)
	if err != nil {
		writeGenerateError(c, err)
		return
	}
	respond.OK(c, result)
}

type detectRequest struct {
	Prompt string `json:"prompt"`
}

type detectResponse struct {
	FieldDetection
	Complete  bool            `json:"complete"`
	Checklist []ChecklistItem `json:"checklist"`
}

func (h *Handler) detect(c *gin.Context) {
	var req detectRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	d := Detect(req.Prompt)
	respond.OK(c, detectResponse{FieldDetection: d, Complete: d.Complete(), Checklist: d.Checklist()})
}

type verifyTokenRequest struct {
	AccessToken string `json:"accessToken"`
}

// verifyToken only checks that a token was sent; it never calls the provider.
func (h *Handler) verifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", msgTokenRequired, nil)
		return
	}
	respond.OK(c, gin.H{"valid": true})
}

// bindOptionalJSON decodes the body, treating an empty body as the zero value.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", msgInvalidJSONBody, nil)
		return false
	}
	return true
}

func writeGenerateError(c *gin.Context, err error) {
	var (
		vErr    *ValidationError
		authErr *llm.AuthError
		upErr   *llm.UpstreamError
		netErr  *llm.NetworkError
	)
	switch {
	case errors.As(err, &vErr):
		if vErr.Field == FieldAccessToken {
			respond.Error(c, http.StatusUnauthorized, "auth_required", vErr.Message, nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", vErr.Message, nil)
	case errors.As(err, &authErr):
		respond.Error(c, upstreamStatus(authErr.Status, http.StatusUnauthorized), "upstream_auth", msgInvalidAPIKey, nil)
	case errors.As(err, &upErr):
		msg := strings.TrimSpace(upErr.Message)
		if msg == "" {
			msg = msgUpstreamFailed
		}
		respond.Error(c, upstreamStatus(upErr.Status, http.StatusBadGateway), "upstream_error", msg, nil)
	case errors.As(err, &netErr):
		telemetry.Error("jobpost.network", map[string]any{"error": netErr.Err, "request_id": c.GetString("requestId")})
		respond.Error(c, http.StatusInternalServerError, "network_error", msgGenerateFailed, nil)
	default:
		telemetry.Error("jobpost.failed", map[string]any{"error": err, "request_id": c.GetString("requestId")})
		respond.Error(c, http.StatusInternalServerError, "internal_error", msgGenerateFailed, nil)
	}
}

// upstreamStatus proxies a provider status when it is an error status.
func upstreamStatus(status, def int) int {
	if status >= 400 && status <= 599 {
		return status
	}
	return def
}
