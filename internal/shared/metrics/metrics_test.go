package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(generationFailed.WithLabelValues("rendering"))
	IncGenerationFailed("rendering")
	after := testutil.ToFloat64(generationFailed.WithLabelValues("rendering"))
	if after-before != 1 {
		t.Fatalf("expected +1, got %v -> %v", before, after)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncGenerationStarted()
	ObserveGenerationDuration(1500 * time.Millisecond)

	router := gin.New()
	router.GET("/metrics", Handler())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, name := range []string{"resume_generation_started_total", "resume_generation_duration_seconds_bucket"} {
		if !strings.Contains(body, name) {
			t.Fatalf("missing %s in output", name)
		}
	}
}
