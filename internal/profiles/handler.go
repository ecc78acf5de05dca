package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"jobpost-backend/internal/shared/server/middleware"
	"jobpost-backend/internal/shared/server/respond"
	"jobpost-backend/internal/shared/telemetry"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user-profile/:userId", h.get)
	rg.POST("/user-profile", h.save)
}

type saveRequest struct {
	UserID       string `json:"userId"`
	GeminiAPIKey string `json:"geminiApiKey"`
}

func (h *Handler) get(c *gin.Context) {
	userID := c.Param("userId")
	if !middleware.CheckOwner(c, userID) {
		return
	}
	view, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "Failed to fetch user profile")
		return
	}
	respond.OK(c, view)
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Invalid request body", nil)
		return
	}
	if !middleware.CheckOwner(c, req.UserID) {
		return
	}
	view, err := h.svc.Save(c.Request.Context(), req.UserID, req.GeminiAPIKey)
	if err != nil {
		writeError(c, err, "Failed to save user profile")
		return
	}
	respond.OK(c, view)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Profile not found", nil)
	case errors.Is(err, ErrUserIDRequired):
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
	default:
		telemetry.Error("profile.failed", map[string]any{"error": err, "request_id": c.GetString("requestId")})
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
