package organizations

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

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
	rg.GET("/organization/:userId", h.get)
	rg.POST("/organization", h.save)
	rg.DELETE("/organization/:userId", h.delete)
}

type saveRequest struct {
	UserID  string          `json:"userId"`
	OrgData json.RawMessage `json:"orgData"`
}

func (h *Handler) get(c *gin.Context) {
	userID := c.Param("userId")
	if !middleware.CheckOwner(c, userID) {
		return
	}
	org, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, org)
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId and orgData are required", nil)
		return
	}
	data := bytes.TrimSpace(req.OrgData)
	if strings.TrimSpace(req.UserID) == "" || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId and orgData are required", nil)
		return
	}
	if !middleware.CheckOwner(c, req.UserID) {
		return
	}
	var patch Patch
	if err := json.Unmarshal(data, &patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "orgData must be an object", nil)
		return
	}

	org, err := h.svc.Save(c.Request.Context(), req.UserID, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, org)
}

func (h *Handler) delete(c *gin.Context) {
	userID := c.Param("userId")
	if !middleware.CheckOwner(c, userID) {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Organization not found", nil)
	case errors.Is(err, ErrUserIDRequired):
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
	default:
		telemetry.Error("organization.failed", map[string]any{"error": err, "request_id": c.GetString("requestId")})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to process organization", nil)
	}
}
