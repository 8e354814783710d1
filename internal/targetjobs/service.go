package targetjobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/jobdesc"
	"resume-optimizer/internal/shared/telemetry"
)

// ResumeRemover deletes the generated resumes of a job before the job itself.
type ResumeRemover interface {
	DeleteForTargetJob(ctx context.Context, userID, targetJobID string) error
}

// Service manages target jobs.
type Service struct {
	Repo    Repo
	Fetcher jobdesc.Source
	Resumes ResumeRemover
	now     func() time.Time
}

// NewService constructs a Service. fetcher and resumes may be nil.
func NewService(repo Repo, fetcher jobdesc.Source, resumes ResumeRemover) *Service {
	return &Service{Repo: repo, Fetcher: fetcher, Resumes: resumes, now: time.Now}
}

// Add stores a job. When no description is given but a URL is, the posting
// is fetched; a failed fetch still stores the job without a description.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (Result, error) {
	if s == nil || s.Repo == nil {
		return Result{}, errors.New("target jobs service not configured")
	}
	job := TargetJob{
		ID:          uuid.NewString(),
		UserID:      userID,
		Company:     strings.TrimSpace(in.Company),
		Title:       strings.TrimSpace(in.Title),
		URL:         strings.TrimSpace(in.URL),
		Description: strings.TrimSpace(in.Description),
		DateAdded:   s.now().UTC(),
	}
	if userID == "" || job.Company == "" || job.Title == "" {
		return Result{}, fmt.Errorf("%w: company and title are required", ErrInvalidInput)
	}

	status := DescriptionNone
	switch {
	case job.Description != "":
		status = DescriptionProvided
	case job.URL != "":
		text, ok := s.fetch(ctx, job)
		if ok {
			job.Description = text
			status = DescriptionFetched
		} else {
			status = DescriptionUnavailable
		}
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return Result{}, err
	}
	return Result{Job: job, DescriptionStatus: status}, nil
}

// List returns the user's jobs, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]TargetJob, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, jobID string) (TargetJob, error) {
	return s.Repo.GetByID(ctx, userID, jobID)
}

// Delete removes the job together with its generated resumes.
func (s *Service) Delete(ctx context.Context, userID, jobID string) error {
	if _, err := s.Repo.GetByID(ctx, userID, jobID); err != nil {
		return err
	}
	if s.Resumes != nil {
		if err := s.Resumes.DeleteForTargetJob(ctx, userID, jobID); err != nil {
			return err
		}
	}
	return s.Repo.Delete(ctx, userID, jobID)
}

// SetDescription replaces the stored description with pasted text.
func (s *Service) SetDescription(ctx context.Context, userID, jobID, description string) (TargetJob, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return TargetJob{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if err := s.Repo.UpdateDescription(ctx, userID, jobID, description); err != nil {
		return TargetJob{}, err
	}
	return s.Repo.GetByID(ctx, userID, jobID)
}

// Refetch downloads the job URL again and stores the text on success.
// A failed fetch leaves the job unchanged and reports DescriptionUnavailable.
func (s *Service) Refetch(ctx context.Context, userID, jobID string) (Result, error) {
	job, err := s.Repo.GetByID(ctx, userID, jobID)
	if err != nil {
		return Result{}, err
	}
	if job.URL == "" {
		return Result{}, fmt.Errorf("%w: job has no URL", ErrInvalidInput)
	}
	text, ok := s.fetch(ctx, job)
	if !ok {
		return Result{Job: job, DescriptionStatus: DescriptionUnavailable}, nil
	}
	if err := s.Repo.UpdateDescription(ctx, userID, jobID, text); err != nil {
		return Result{}, err
	}
	job.Description = text
	return Result{Job: job, DescriptionStatus: DescriptionFetched}, nil
}

func (s *Service) fetch(ctx context.Context, job TargetJob) (string, bool) {
	if s.Fetcher == nil {
		return "", false
	}
	text, err := s.Fetcher.Fetch(ctx, job.URL)
	if err != nil {
		telemetry.Warn("job description unavailable", map[string]any{
			"target_job_id": job.ID,
			"url":           job.URL,
			"error":         err.Error(),
		})
		return "", false
	}
	return text, true
}
