package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"jobpost-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := telemetry.SetLogger(zap.New(core))
	defer restore()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Logging())
	router.GET("/api/organization/:userId", func(c *gin.Context) {
		CheckOwner(c, c.Param("userId"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/organization/u1", nil)
	req.Header.Set("X-Request-Id", "req-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	entries := logs.FilterMessage("request.complete").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request.complete entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	for _, key := range []string{"request_id", "method", "path", "route", "status", "duration_ms"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if fields["request_id"] != "req-1" {
		t.Fatalf("unexpected request_id: %v", fields["request_id"])
	}
	if fields["route"] != "/api/organization/:userId" {
		t.Fatalf("unexpected route: %v", fields["route"])
	}
	if fields["target_user_id"] != "u1" {
		t.Fatalf("unexpected target_user_id: %v", fields["target_user_id"])
	}
	if got := resp.Header().Get("X-Request-Id"); got != "req-1" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}

func TestRecoveryReturns500(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := telemetry.SetLogger(zap.New(core))
	defer restore()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if logs.FilterMessage("panic").Len() != 1 {
		t.Fatalf("expected panic to be logged")
	}
}
