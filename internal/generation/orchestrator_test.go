package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-optimizer/internal/experiences"
	"resume-optimizer/internal/generatedresumes"
	"resume-optimizer/internal/jobdesc"
	"resume-optimizer/internal/profiles"
	"resume-optimizer/internal/selector"
	"resume-optimizer/internal/shared/storage/object/local"
	"resume-optimizer/internal/targetjobs"
	"resume-optimizer/internal/usage"
	"resume-optimizer/resume/render"
)

const testUser = "user-1"

// echoModel returns the bullets it was offered, in order.
type echoModel struct{ calls int }

func (m *echoModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	var bullets []string
	inPool := false
	for _, line := range strings.Split(prompt, "\n") {
		switch {
		case strings.HasPrefix(line, "AVAILABLE EXPERIENCE BULLETS"):
			inPool = true
		case inPool && strings.HasPrefix(line, "- "):
			bullets = append(bullets, strings.TrimPrefix(line, "- "))
		case inPool && line == "":
			inPool = false
		}
	}
	out, _ := json.Marshal(map[string][]string{"bullets": bullets})
	return string(out), nil
}

type brokenModel struct{}

func (brokenModel) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("upstream unavailable")
}

type fakeRenderer struct {
	err   error
	calls int
}

func (r *fakeRenderer) RenderFile(ctx context.Context, htmlPath, pdfPath string) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(pdfPath, []byte("%PDF-1.4\n% fake resume\n%%EOF\n"), 0o644)
}

type staticSource struct {
	text string
	err  error
}

func (s staticSource) Fetch(ctx context.Context, rawURL string) (string, error) {
	return s.text, s.err
}

type failingResumes struct{}

func (failingResumes) Create(ctx context.Context, resume generatedresumes.GeneratedResume) error {
	return errors.New("insert failed")
}

type fixture struct {
	orch     *Orchestrator
	jobs     *targetjobs.Service
	exps     *experiences.Service
	quota    *usage.Service
	resumes  *generatedresumes.MemoryRepo
	renderer *fakeRenderer
	model    *echoModel
}

func newFixture(t *testing.T, limit int) *fixture {
	t.Helper()
	ctx := context.Background()

	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	_, err := profileSvc.Replace(ctx, profiles.Profile{
		UserID:   testUser,
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Skills:   []string{"Planning", "Budgeting"},
	})
	require.NoError(t, err)

	f := &fixture{
		jobs:     targetjobs.NewService(targetjobs.NewMemoryRepo(), nil, nil),
		exps:     experiences.NewService(experiences.NewMemoryRepo()),
		quota:    usage.NewService(limit),
		resumes:  generatedresumes.NewMemoryRepo(),
		renderer: &fakeRenderer{},
		model:    &echoModel{},
	}
	f.orch = &Orchestrator{
		Jobs:        f.jobs,
		Profiles:    profileSvc,
		Experiences: f.exps,
		Quota:       f.quota,
		Selector:    selector.New(f.model),
		Renderer:    f.renderer,
		Store:       local.New(t.TempDir()),
		Resumes:     f.resumes,
		Options:     Options{BrandPrefix: "Jane", TargetCount: 2, TempDir: t.TempDir()},
		now:         func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) },
	}
	return f
}

func (f *fixture) addExperience(t *testing.T, company, title string, bullets ...string) experiences.Experience {
	t.Helper()
	ctx := context.Background()
	exp, err := f.exps.AddExperience(ctx, testUser, experiences.ExperienceInput{Company: company, Title: title, StartDate: "2020"})
	require.NoError(t, err)
	if len(bullets) > 0 {
		_, err = f.exps.AddBullets(ctx, testUser, exp.ID, bullets)
		require.NoError(t, err)
	}
	return exp
}

func (f *fixture) addJob(t *testing.T, in targetjobs.AddInput) targetjobs.TargetJob {
	t.Helper()
	res, err := f.jobs.Add(context.Background(), testUser, in)
	require.NoError(t, err)
	return res.Job
}

func (f *fixture) resumeCount(t *testing.T) int {
	t.Helper()
	u, err := f.quota.Get(context.Background(), testUser)
	require.NoError(t, err)
	return u.Count
}

func (f *fixture) storedResumes(t *testing.T) []generatedresumes.GeneratedResume {
	t.Helper()
	list, err := f.resumes.ListByUser(context.Background(), testUser, 50, 0)
	require.NoError(t, err)
	return list
}

func TestGenerateEndToEnd(t *testing.T) {
	f := newFixture(t, 50)
	exp := f.addExperience(t, "Acme Corp", "Project Manager", "Led team of 5", "Cut costs by 10%")
	job := f.addJob(t, targetjobs.AddInput{Company: "Acme Corp", Title: "Project Manager", Description: "Seeking a project manager to lead delivery."})

	require.Equal(t, 0, f.resumeCount(t))

	out, err := f.orch.Generate(context.Background(), testUser, job.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, f.resumeCount(t))
	assert.Equal(t, 1, out.Usage.Count)
	assert.Equal(t, Trail{StateIdle, StateDescribing, StateSelecting, StateAssembling, StateRendering, StatePersisting, StateDone}, out.Trail)
	assert.Equal(t, []string{"Led team of 5", "Cut costs by 10%"}, out.Resume.Selections[exp.ID])
	assert.Equal(t, "Jane_Resume_Acme_Corp_250314", out.Resume.Filename)
	assert.Contains(t, out.Resume.HTML, "Jane Doe")
	assert.Contains(t, out.Resume.HTML, "Acme Corp")
	assert.Contains(t, out.Resume.HTML, "Cut costs by 10%")
	assert.Equal(t, 1, f.model.calls)

	stored := f.storedResumes(t)
	require.Len(t, stored, 1)
	assert.Equal(t, out.Resume.ID, stored[0].ID)
	assert.Equal(t, job.ID, stored[0].TargetJobID)

	rc, err := f.orch.Store.Open(context.Background(), out.Resume.StorageKey)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestGenerateRenderFailureLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t, 50)
	f.addExperience(t, "Acme Corp", "Project Manager", "Led team of 5")
	job := f.addJob(t, targetjobs.AddInput{Company: "Acme Corp", Title: "PM", Description: "Seeking a project manager."})
	f.renderer.err = errors.New("browser crashed")

	out, err := f.orch.Generate(context.Background(), testUser, job.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrRenderFailed)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StateRendering, genErr.State)
	assert.Equal(t, StateErrored, out.Trail.Last())
	assert.Equal(t, 0, f.resumeCount(t))
	assert.Empty(t, f.storedResumes(t))
}

func TestGenerateGuards(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture) string
		wantErr error
	}{
		{
			name: "unknown job",
			setup: func(t *testing.T, f *fixture) string {
				f.addExperience(t, "Acme", "PM", "Led team of 5")
				return "missing-job"
			},
			wantErr: ErrNotFound,
		},
		{
			name: "no description and no url",
			setup: func(t *testing.T, f *fixture) string {
				f.addExperience(t, "Acme", "PM", "Led team of 5")
				return f.addJob(t, targetjobs.AddInput{Company: "Acme", Title: "PM"}).ID
			},
			wantErr: ErrMissingDescription,
		},
		{
			name: "no bullets",
			setup: func(t *testing.T, f *fixture) string {
				f.addExperience(t, "Acme", "PM")
				return f.addJob(t, targetjobs.AddInput{Company: "Acme", Title: "PM", Description: "Seeking a PM."}).ID
			},
			wantErr: ErrNoBullets,
		},
		{
			name: "limit reached",
			setup: func(t *testing.T, f *fixture) string {
				f.addExperience(t, "Acme", "PM", "Led team of 5")
				_, err := f.quota.Consume(context.Background(), testUser)
				require.NoError(t, err)
				return f.addJob(t, targetjobs.AddInput{Company: "Acme", Title: "PM", Description: "Seeking a PM."}).ID
			},
			wantErr: usage.ErrLimitReached,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1)
			jobID := tt.setup(t, f)

			out, err := f.orch.Generate(context.Background(), testUser, jobID)
			require.ErrorIs(t, err, tt.wantErr)

			var genErr *Error
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, StateIdle, genErr.State)
			assert.Equal(t, Trail{StateIdle}, out.Trail)
			assert.Zero(t, f.renderer.calls)
			assert.Zero(t, f.model.calls)
			assert.Empty(t, f.storedResumes(t))
		})
	}
}

func TestGenerateFetchesAndStoresDescription(t *testing.T) {
	f := newFixture(t, 50)
	f.addExperience(t, "Acme Corp", "PM", "Led team of 5")
	job := f.addJob(t, targetjobs.AddInput{Company: "Acme Corp", Title: "PM", URL: "https://jobs.example.com/1"})
	require.False(t, job.HasDescription())

	f.orch.Fetcher = staticSource{text: "Seeking a project manager with delivery experience."}
	_, err := f.orch.Generate(context.Background(), testUser, job.ID)
	require.NoError(t, err)

	updated, err := f.jobs.Get(context.Background(), testUser, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seeking a project manager with delivery experience.", updated.Description)
}

func TestGenerateFetchFailure(t *testing.T) {
	f := newFixture(t, 50)
	f.addExperience(t, "Acme Corp", "PM", "Led team of 5")
	job := f.addJob(t, targetjobs.AddInput{Company: "Acme Corp", Title: "PM", URL: "https://jobs.example.com/1"})

	f.orch.Fetcher = staticSource{err: jobdesc.ErrTooShort}
	_, err := f.orch.Generate(context.Background(), testUser, job.ID)
	require.ErrorIs(t, err, ErrMissingDescription)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StateDescribing, genErr.State)
	assert.Equal(t, 0, f.resumeCount(t))
	assert.Zero(t, f.model.calls)
}

func TestGenerateReleasesQuotaWhenRecordFails(t *testing.T) {
	f := newFixture(t, 50)
	f.addExperience(t, "Acme Corp", "PM", "Led team of 5")
	job := f.addJob(t, targetjobs.AddInput{Company: "Acme Corp", Title: "PM", Description: "Seeking a PM."})
	f.orch.Resumes = failingResumes{}

	_, err := f.orch.Generate(context.Background(), testUser, job.ID)
	require.Error(t, err)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StatePersisting, genErr.State)
	assert.Equal(t, 0, f.resumeCount(t))
}

func TestGenerateModelFailureUsesOriginalBullets(t *testing.T) {
	f := newFixture(t, 50)
	exp := f.addExperience(t, "Acme Corp", "PM", "Led team of 5", "Cut costs by 10%", "Shipped v2")
	job := f.addJob(t, targetjobs.AddInput{Company: "Acme Corp", Title: "PM", Description: "Seeking a PM."})
	f.orch.Selector = selector.New(brokenModel{})

	out, err := f.orch.Generate(context.Background(), testUser, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Led team of 5", "Cut costs by 10%"}, out.Resume.Selections[exp.ID])
	assert.NotEmpty(t, out.Warnings)
}

func TestGenerateSelectsPerExperienceInDisplayOrder(t *testing.T) {
	f := newFixture(t, 50)
	first := f.addExperience(t, "Acme Corp", "PM", "Led team of 5")
	second := f.addExperience(t, "Globex", "Analyst", "Built reports")
	job := f.addJob(t, targetjobs.AddInput{Company: "Initech", Title: "PM", Description: "Seeking a PM."})

	out, err := f.orch.Generate(context.Background(), testUser, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, f.model.calls)
	assert.Equal(t, []string{"Led team of 5"}, out.Resume.Selections[first.ID])
	assert.Equal(t, []string{"Built reports"}, out.Resume.Selections[second.ID])
	assert.Less(t, strings.Index(out.Resume.HTML, "Acme Corp"), strings.Index(out.Resume.HTML, "Globex"))
}

func TestFileStem(t *testing.T) {
	at := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Tailored_Resume_Acme_Corp_240105", FileStem("", "Acme Corp", at))
	assert.Equal(t, "JD_Resume_Acme_Corp_240105", FileStem(" JD ", "Acme Corp", at))
}
