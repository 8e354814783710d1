package generatedresumes

import (
	"context"
	"errors"
	"io"

	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/telemetry"
)

// Service reads stored resumes and their PDF artifacts.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store}
}

// Get returns a generated resume by ID for a user.
func (s *Service) Get(ctx context.Context, userID, generatedResumeID string) (GeneratedResume, error) {
	if userID == "" || generatedResumeID == "" {
		return GeneratedResume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, generatedResumeID)
}

// List returns generated resumes for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// OpenPDF returns the stored PDF of a resume. The caller closes the reader.
func (s *Service) OpenPDF(ctx context.Context, userID, generatedResumeID string) (GeneratedResume, io.ReadCloser, error) {
	resume, err := s.Get(ctx, userID, generatedResumeID)
	if err != nil {
		return GeneratedResume{}, nil, err
	}
	if resume.StorageKey == "" || s.Store == nil {
		return GeneratedResume{}, nil, ErrNotFound
	}
	rc, err := s.Store.Open(ctx, resume.StorageKey)
	if errors.Is(err, object.ErrNotFound) {
		return GeneratedResume{}, nil, ErrNotFound
	}
	if err != nil {
		return GeneratedResume{}, nil, err
	}
	return resume, rc, nil
}

// DeleteForTargetJob removes the job's resumes and their stored PDFs.
// Artifact removal is best effort.
func (s *Service) DeleteForTargetJob(ctx context.Context, userID, targetJobID string) error {
	removed, err := s.Repo.DeleteByTargetJob(ctx, userID, targetJobID)
	if err != nil {
		return err
	}
	if s.Store == nil {
		return nil
	}
	for _, resume := range removed {
		if resume.StorageKey == "" {
			continue
		}
		if err := s.Store.Delete(ctx, resume.StorageKey); err != nil && !errors.Is(err, object.ErrNotFound) {
			telemetry.Warn("generated resume artifact delete failed", map[string]any{
				"resume_id":   resume.ID,
				"storage_key": resume.StorageKey,
				"error":       err.Error(),
			})
		}
	}
	return nil
}
