package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	telemetry.Configure(&buf, "info")
	t.Cleanup(func() { telemetry.Configure(nil, "info") })

	router := gin.New()
	router.Use(RequestID(), func(c *gin.Context) {
		c.Set(userIDKey, "user-1")
		c.Next()
	}, Logging())
	router.POST("/test", func(c *gin.Context) {
		c.Set(TargetJobIDKey, "job-1")
		c.Set(ResumeIDKey, "resume-1")
		c.Set(StateTrailKey, "idle>describing>done")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	want := map[string]any{
		"msg":           "request.complete",
		"request_id":    "req-123",
		"user_id":       "user-1",
		"target_job_id": "job-1",
		"resume_id":     "resume-1",
		"state_trail":   "idle>describing>done",
	}
	for key, val := range want {
		if payload[key] != val {
			t.Fatalf("field %s = %v, want %v", key, payload[key], val)
		}
	}
	if _, ok := payload["duration_ms"]; !ok {
		t.Fatalf("missing duration_ms")
	}
	if resp.Header().Get("X-Request-Id") != "req-123" {
		t.Fatalf("expected request id echoed")
	}
}
