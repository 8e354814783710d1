// Package generation runs the tailored-resume workflow for one target job.
package generation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/experiences"
	"resume-optimizer/internal/generatedresumes"
	"resume-optimizer/internal/jobdesc"
	"resume-optimizer/internal/profiles"
	"resume-optimizer/internal/selector"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/targetjobs"
	"resume-optimizer/internal/usage"
	"resume-optimizer/resume/model"
	"resume-optimizer/resume/render"
)

type Jobs interface {
	Get(ctx context.Context, userID, jobID string) (targetjobs.TargetJob, error)
	SetDescription(ctx context.Context, userID, jobID, description string) (targetjobs.TargetJob, error)
}

type Profiles interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

type Experiences interface {
	ActivePools(ctx context.Context, userID string) ([]experiences.Pool, error)
}

type Quota interface {
	CanGenerate(ctx context.Context, userID string) (bool, usage.Usage, error)
	Consume(ctx context.Context, userID string) (usage.Usage, error)
	Release(ctx context.Context, userID string) (usage.Usage, error)
}

type BulletSelector interface {
	Select(ctx context.Context, req selector.Request) selector.Selection
}

type ResumeStore interface {
	Create(ctx context.Context, resume generatedresumes.GeneratedResume) error
}

// Options tune a run.
type Options struct {
	BrandPrefix string
	TargetCount int
	// TempDir holds per-run scratch directories; empty uses the OS default.
	TempDir string
}

// Orchestrator wires the collaborators of a generation run.
type Orchestrator struct {
	Jobs        Jobs
	Profiles    Profiles
	Experiences Experiences
	Quota       Quota
	Fetcher     jobdesc.Source
	Selector    BulletSelector
	Renderer    render.Renderer
	Store       object.ObjectStore
	Resumes     ResumeStore
	Options     Options
	now         func() time.Time
}

// Outcome is what a successful run produced.
type Outcome struct {
	Resume   generatedresumes.GeneratedResume `json:"resume"`
	Usage    usage.Usage                      `json:"usage"`
	Trail    Trail                            `json:"stateTrail"`
	Warnings []string                         `json:"warnings"`
}

type run struct {
	userID   string
	job      targetjobs.TargetJob
	pools    []experiences.Pool
	trail    Trail
	warnings []string
	started  time.Time
}

func (r *run) enter(s State) {
	r.trail = append(r.trail, s)
}

// Generate runs the workflow. Guards are checked before any work starts; a
// failure in any state leaves the resume count and stored resumes unchanged.
func (o *Orchestrator) Generate(ctx context.Context, userID, jobID string) (Outcome, error) {
	r := &run{userID: userID, trail: Trail{StateIdle}}
	if err := o.guard(ctx, r, jobID); err != nil {
		return Outcome{Trail: r.trail}, &Error{State: StateIdle, Err: err}
	}

	r.started = o.clock()
	metrics.IncGenerationStarted()

	outcome, err := o.execute(ctx, r)
	if err != nil {
		var genErr *Error
		if errors.As(err, &genErr) {
			metrics.IncGenerationFailed(string(genErr.State))
			telemetry.Warn("resume generation failed", map[string]any{
				"user_id":       userID,
				"target_job_id": jobID,
				"state":         string(genErr.State),
				"error":         genErr.Err.Error(),
			})
		}
		r.enter(StateErrored)
		return Outcome{Trail: r.trail}, err
	}

	r.enter(StateDone)
	outcome.Trail = r.trail
	outcome.Warnings = r.warnings
	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDuration(o.clock().Sub(r.started))
	telemetry.Info("resume generated", map[string]any{
		"user_id":       userID,
		"target_job_id": jobID,
		"resume_id":     outcome.Resume.ID,
		"page_count":    outcome.Resume.PageCount,
		"state_trail":   r.trail.String(),
	})
	return outcome, nil
}

func (o *Orchestrator) guard(ctx context.Context, r *run, jobID string) error {
	job, err := o.Jobs.Get(ctx, r.userID, jobID)
	if errors.Is(err, targetjobs.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !job.HasDescription() && job.URL == "" {
		return ErrMissingDescription
	}

	pools, err := o.Experiences.ActivePools(ctx, r.userID)
	if err != nil {
		return err
	}
	if !experiences.HasBullets(pools) {
		return ErrNoBullets
	}

	ok, _, err := o.Quota.CanGenerate(ctx, r.userID)
	if err != nil {
		return err
	}
	if !ok {
		return usage.ErrLimitReached
	}

	r.job = job
	r.pools = pools
	return nil
}

func (o *Orchestrator) execute(ctx context.Context, r *run) (Outcome, error) {
	r.enter(StateDescribing)
	description, fetched, err := o.describe(ctx, r.job)
	if err != nil {
		return Outcome{}, &Error{State: StateDescribing, Err: err}
	}

	r.enter(StateSelecting)
	selections, err := o.selectBullets(ctx, r, description)
	if err != nil {
		return Outcome{}, &Error{State: StateSelecting, Err: err}
	}

	r.enter(StateAssembling)
	profile, err := o.Profiles.Get(ctx, r.userID)
	if err != nil {
		return Outcome{}, &Error{State: StateAssembling, Err: err}
	}
	html, err := render.RenderHTML(buildResume(profile, r.pools, selections))
	if err != nil {
		return Outcome{}, &Error{State: StateAssembling, Err: err}
	}

	r.enter(StateRendering)
	createdAt := o.clock().UTC()
	stem := FileStem(o.Options.BrandPrefix, r.job.Company, createdAt)
	pdfBytes, pages, err := o.renderPDF(ctx, stem, html)
	if err != nil {
		return Outcome{}, &Error{State: StateRendering, Err: err}
	}
	if pages > 1 {
		r.warnings = append(r.warnings, fmt.Sprintf("resume is %d pages; it may not fit on one page", pages))
		telemetry.Warn("resume exceeds one page", map[string]any{"target_job_id": r.job.ID, "page_count": pages})
	}

	r.enter(StatePersisting)
	resume := generatedresumes.GeneratedResume{
		ID:          uuid.NewString(),
		UserID:      r.userID,
		TargetJobID: r.job.ID,
		Selections:  selections,
		HTML:        html,
		Filename:    stem,
		PageCount:   pages,
		CreatedAt:   createdAt,
		JobCompany:  r.job.Company,
		JobTitle:    r.job.Title,
	}
	quota, err := o.persist(ctx, r, &resume, pdfBytes)
	if err != nil {
		return Outcome{}, &Error{State: StatePersisting, Err: err}
	}

	if fetched {
		if _, err := o.Jobs.SetDescription(ctx, r.userID, r.job.ID, description); err != nil {
			telemetry.Warn("storing fetched job description failed", map[string]any{
				"target_job_id": r.job.ID,
				"error":         err.Error(),
			})
		}
	}
	return Outcome{Resume: resume, Usage: quota}, nil
}

func (o *Orchestrator) describe(ctx context.Context, job targetjobs.TargetJob) (string, bool, error) {
	if job.HasDescription() {
		return job.Description, false, nil
	}
	if o.Fetcher == nil {
		return "", false, ErrMissingDescription
	}
	text, err := o.Fetcher.Fetch(ctx, job.URL)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrMissingDescription, err)
	}
	return text, true, nil
}

func (o *Orchestrator) selectBullets(ctx context.Context, r *run, description string) (map[string][]string, error) {
	count := o.Options.TargetCount
	if count <= 0 {
		count = selector.DefaultTargetCount
	}
	selections := make(map[string][]string, len(r.pools))
	for _, pool := range r.pools {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		exp := pool.Experience
		sel := o.Selector.Select(ctx, selector.Request{
			JobDescription: description,
			Pool:           pool.Texts(),
			TargetCount:    count,
			Context:        fmt.Sprintf("Position: %s at %s", exp.Title, exp.Company),
		})
		if sel.Fallback {
			r.warnings = append(r.warnings, fmt.Sprintf("used original bullets for %s (%s)", exp.Company, sel.Reason))
		}
		selections[exp.ID] = sel.Bullets
	}
	return selections, nil
}

func (o *Orchestrator) renderPDF(ctx context.Context, stem, html string) ([]byte, int, error) {
	dir, err := os.MkdirTemp(o.Options.TempDir, "resume-")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: temp dir: %v", render.ErrRenderFailed, err)
	}
	defer os.RemoveAll(dir)

	_, pdfPath, err := render.WriteAndRender(ctx, o.Renderer, dir, stem, html)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil || len(data) == 0 {
		return nil, 0, fmt.Errorf("%w: read pdf: %v", render.ErrRenderFailed, err)
	}

	pages, err := render.PageCount(data)
	if err != nil {
		telemetry.Warn("pdf page count failed", map[string]any{"error": err.Error()})
		pages = 0
	}
	return data, pages, nil
}

// persist saves the PDF, consumes one unit of quota and records the resume.
// Each later step undoes the earlier ones on failure.
func (o *Orchestrator) persist(ctx context.Context, r *run, resume *generatedresumes.GeneratedResume, pdf []byte) (usage.Usage, error) {
	key, size, _, err := o.Store.Save(ctx, r.userID, resume.Filename+".pdf", bytes.NewReader(pdf))
	if err != nil {
		return usage.Usage{}, err
	}
	resume.StorageKey = key
	resume.SizeBytes = size

	quota, err := o.Quota.Consume(ctx, r.userID)
	if err != nil {
		o.discard(key)
		return usage.Usage{}, err
	}

	if err := o.Resumes.Create(ctx, *resume); err != nil {
		if _, relErr := o.Quota.Release(context.WithoutCancel(ctx), r.userID); relErr != nil {
			telemetry.Error("releasing resume quota failed", map[string]any{
				"user_id": r.userID,
				"error":   relErr.Error(),
			})
		}
		o.discard(key)
		return usage.Usage{}, err
	}
	return quota, nil
}

func (o *Orchestrator) discard(key string) {
	if err := o.Store.Delete(context.Background(), key); err != nil && !errors.Is(err, object.ErrNotFound) {
		telemetry.Warn("discarding resume artifact failed", map[string]any{"storage_key": key, "error": err.Error()})
	}
}

func (o *Orchestrator) clock() time.Time {
	if o.now != nil {
		return o.now()
	}
	return time.Now()
}

func buildResume(p profiles.Profile, pools []experiences.Pool, selections map[string][]string) model.Resume {
	out := model.Resume{
		Profile: model.Profile{
			FullName:    p.FullName,
			Email:       p.Email,
			Phone:       p.Phone,
			LinkedInURL: p.LinkedInURL,
			Location:    p.Location,
			Skills:      p.Skills,
		},
		Selections: selections,
	}
	for _, e := range p.Education {
		out.Profile.Education = append(out.Profile.Education, model.Education{Degree: e.Degree, School: e.School, Year: e.Year})
	}
	for _, pool := range pools {
		exp := pool.Experience
		out.Experiences = append(out.Experiences, model.Experience{
			ID:        exp.ID,
			Company:   exp.Company,
			Title:     exp.Title,
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
			IsCurrent: exp.IsCurrent,
		})
	}
	return out
}
