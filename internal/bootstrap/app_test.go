package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/bootstrap"
	"resume-optimizer/internal/shared/config"
)

type echoFirst struct{}

func (echoFirst) Complete(ctx context.Context, prompt string) (string, error) {
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- ") {
			out, _ := json.Marshal(map[string][]string{"bullets": {strings.TrimPrefix(line, "- ")}})
			return string(out), nil
		}
	}
	return `{"bullets": []}`, nil
}

type fileRenderer struct{}

func (fileRenderer) RenderFile(ctx context.Context, htmlPath, pdfPath string) error {
	return os.WriteFile(pdfPath, []byte("%PDF-1.4\n%%EOF\n"), 0o644)
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp := httptest.NewRecorder()
	c.router.ServeHTTP(resp, req)
	return resp
}

func (c *client) expect(resp *httptest.ResponseRecorder, status int, out any) {
	c.t.Helper()
	if resp.Code != status {
		c.t.Fatalf("expected %d, got %d: %s", status, resp.Code, resp.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
			c.t.Fatalf("decode: %v", err)
		}
	}
}

func TestGenerateFlowInMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Env:               "dev",
		CORSAllowOrigin:   []string{"http://localhost:5173"},
		ObjectStoreType:   "local",
		LocalStoreDir:     t.TempDir(),
		BrandPrefix:       "Jane",
		TargetBulletCount: 2,
		ResumeLimit:       50,
	}
	app, err := bootstrap.Build(cfg, bootstrap.Overrides{Completer: echoFirst{}, Renderer: fileRenderer{}})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	c := &client{t: t, router: app.Router}

	c.expect(c.do(http.MethodGet, "/api/v1/me", nil), http.StatusUnauthorized, nil)

	var auth struct {
		Token string `json:"token"`
	}
	c.expect(c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "jane", "password": "pw-123456", "confirmPassword": "pw-123456",
	}), http.StatusCreated, &auth)
	c.token = auth.Token

	c.expect(c.do(http.MethodPut, "/api/v1/profile", map[string]any{
		"fullName": "Jane Doe", "email": "jane@example.com",
	}), http.StatusOK, nil)

	var exp struct {
		ID string `json:"id"`
	}
	c.expect(c.do(http.MethodPost, "/api/v1/experiences", map[string]any{
		"company": "Acme Corp", "title": "Project Manager", "startDate": "2020",
	}), http.StatusCreated, &exp)
	c.expect(c.do(http.MethodPost, "/api/v1/experiences/"+exp.ID+"/bullets", map[string]any{
		"text": "Led team of 5\nCut costs by 10%",
	}), http.StatusCreated, nil)

	var added struct {
		Job struct {
			ID string `json:"id"`
		} `json:"job"`
	}
	c.expect(c.do(http.MethodPost, "/api/v1/target-jobs", map[string]any{
		"company": "Acme Corp", "title": "PM", "description": "Seeking a project manager.",
	}), http.StatusCreated, &added)

	var generated struct {
		Resume struct {
			ID string `json:"id"`
		} `json:"resume"`
	}
	c.expect(c.do(http.MethodPost, "/api/v1/target-jobs/"+added.Job.ID+"/generate", nil), http.StatusCreated, &generated)

	var listed []struct {
		ID string `json:"id"`
	}
	c.expect(c.do(http.MethodGet, "/api/v1/resumes", nil), http.StatusOK, &listed)
	if len(listed) != 1 || listed[0].ID != generated.Resume.ID {
		t.Fatalf("unexpected resumes %+v", listed)
	}

	download := c.do(http.MethodGet, "/api/v1/resumes/"+generated.Resume.ID+"/download", nil)
	c.expect(download, http.StatusOK, nil)
	if !strings.HasPrefix(download.Body.String(), "%PDF") {
		t.Fatalf("expected pdf body")
	}

	var me struct {
		Usage struct {
			Count int `json:"resumeCount"`
		} `json:"usage"`
	}
	c.expect(c.do(http.MethodGet, "/api/v1/me", nil), http.StatusOK, &me)
	if me.Usage.Count != 1 {
		t.Fatalf("expected resume count 1, got %d", me.Usage.Count)
	}

	c.expect(c.do(http.MethodDelete, "/api/v1/target-jobs/"+added.Job.ID, nil), http.StatusNoContent, nil)
	c.expect(c.do(http.MethodGet, "/api/v1/resumes/"+generated.Resume.ID, nil), http.StatusNotFound, nil)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(config.Config{Env: "dev", LocalStoreDir: t.TempDir()})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
