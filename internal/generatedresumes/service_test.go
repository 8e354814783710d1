package generatedresumes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/storage/object/local"
)

func seed(t *testing.T, svc *Service, userID, jobID string, createdAt time.Time) GeneratedResume {
	t.Helper()
	key, size, _, err := svc.Store.Save(context.Background(), userID, "resume.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	resume := GeneratedResume{
		ID:          "r-" + createdAt.Format("150405"),
		UserID:      userID,
		TargetJobID: jobID,
		Selections:  map[string][]string{"e-1": {"Led team of 5"}},
		HTML:        "<html>ok</html>",
		Filename:    "Tailored_Resume_Acme_Corp_240501",
		StorageKey:  key,
		SizeBytes:   size,
		PageCount:   1,
		CreatedAt:   createdAt,
		JobCompany:  "Acme Corp",
		JobTitle:    "PM",
	}
	if err := svc.Repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return resume
}

func TestListNewestFirstAndScoped(t *testing.T) {
	svc := NewService(NewMemoryRepo(), local.New(t.TempDir()))
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	older := seed(t, svc, "u-1", "j-1", base)
	newer := seed(t, svc, "u-1", "j-1", base.Add(time.Minute))
	seed(t, svc, "u-2", "j-9", base.Add(2*time.Minute))

	got, err := svc.List(context.Background(), "u-1", 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("unexpected order %+v", got)
	}

	if _, err := svc.Get(context.Background(), "u-2", older.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign resume, got %v", err)
	}
}

func TestDeleteForTargetJobRemovesArtifacts(t *testing.T) {
	svc := NewService(NewMemoryRepo(), local.New(t.TempDir()))
	resume := seed(t, svc, "u-1", "j-1", time.Now().UTC())
	keep := seed(t, svc, "u-1", "j-2", time.Now().UTC().Add(time.Second))

	if err := svc.DeleteForTargetJob(context.Background(), "u-1", "j-1"); err != nil {
		t.Fatalf("DeleteForTargetJob: %v", err)
	}
	if _, _, err := svc.OpenPDF(context.Background(), "u-1", resume.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted resume, got %v", err)
	}
	if _, err := svc.Store.Open(context.Background(), resume.StorageKey); err == nil {
		t.Fatalf("expected artifact removed")
	}
	if _, err := svc.Get(context.Background(), "u-1", keep.ID); err != nil {
		t.Fatalf("other job's resume should remain: %v", err)
	}
}

func TestHandlerDownloadAndHTML(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo(), local.New(t.TempDir()))
	resume := seed(t, svc, "u-1", "j-1", time.Now().UTC())

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, "u-1", "jane")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(api)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+resume.ID+"/download", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Disposition"); !strings.Contains(got, resume.Filename+".pdf") {
		t.Fatalf("unexpected disposition %q", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "%PDF") {
		t.Fatalf("unexpected body %q", body)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+resume.ID+"/html", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != resume.HTML {
		t.Fatalf("unexpected html response %d %q", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/missing", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
