package linkedin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"jobpost-backend/internal/organizations"
	"jobpost-backend/internal/shared/server/middleware"
	"jobpost-backend/internal/shared/server/respond"
	"jobpost-backend/internal/shared/telemetry"
)

type Handler struct {
	importer *Importer
}

func NewHandler(importer *Importer) *Handler {
	return &Handler{importer: importer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scrape-linkedin", h.scrape)
}

type scrapeRequest struct {
	LinkedInURL string `json:"linkedinUrl"`
	UserID      string `json:"userId"`
}

type scrapeResponse struct {
	Success      bool                       `json:"success"`
	Organization organizations.Organization `json:"organization"`
	Message      string                     `json:"message"`
}

func (h *Handler) scrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Invalid request body", nil)
		return
	}
	if req.UserID != "" && !middleware.CheckOwner(c, req.UserID) {
		return
	}

	org, err := h.importer.Import(c.Request.Context(), req.LinkedInURL, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, scrapeResponse{
		Success:      true,
		Organization: org,
		Message:      "LinkedIn data imported successfully",
	})
}

func writeError(c *gin.Context, err error) {
	var provErr *ProviderError
	switch {
	case errors.Is(err, ErrURLRequired):
		respond.Error(c, http.StatusBadRequest, "validation_error", "LinkedIn URL is required", nil)
	case errors.Is(err, ErrUserIDRequired):
		respond.Error(c, http.StatusBadRequest, "validation_error", "User ID is required", nil)
	case errors.Is(err, ErrInvalidURL):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Could not extract company ID from LinkedIn URL", nil)
	case errors.Is(err, ErrCompanyNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Company not found on LinkedIn. Please check the URL.", nil)
	case errors.Is(err, ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "ScrapingDog API rate limit reached. Please try again later.", nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "LinkedIn import is not configured", nil)
	case errors.As(err, &provErr):
		respond.Error(c, http.StatusBadGateway, "upstream_error", "Failed to scrape LinkedIn data", nil)
	default:
		telemetry.Error("linkedin.import_failed", map[string]any{"error": err, "request_id": c.GetString("requestId")})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to scrape LinkedIn data", nil)
	}
}
