package generatedresumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores generated resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]GeneratedResume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]GeneratedResume)}
}

// Create stores the generated resume.
func (r *MemoryRepo) Create(ctx context.Context, resume GeneratedResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID] = resume
	return nil
}

// GetByID returns a generated resume by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, generatedResumeID string) (GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedResume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[generatedResumeID]
	if !ok || resume.UserID != userID {
		return GeneratedResume{}, ErrNotFound
	}
	return resume, nil
}

// ListByUser returns generated resumes for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	resumes := make([]GeneratedResume, 0)
	for _, resume := range r.byID {
		if resume.UserID == userID {
			resumes = append(resumes, resume)
		}
	}
	r.mu.RUnlock()

	if offset >= len(resumes) {
		return []GeneratedResume{}, nil
	}
	sort.Slice(resumes, func(i, j int) bool {
		if resumes[i].CreatedAt.Equal(resumes[j].CreatedAt) {
			return resumes[i].ID > resumes[j].ID
		}
		return resumes[i].CreatedAt.After(resumes[j].CreatedAt)
	})

	end := len(resumes)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return resumes[offset:end], nil
}

func (r *MemoryRepo) DeleteByTargetJob(ctx context.Context, userID, targetJobID string) ([]GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := make([]GeneratedResume, 0)
	for id, resume := range r.byID {
		if resume.UserID == userID && resume.TargetJobID == targetJobID {
			removed = append(removed, resume)
			delete(r.byID, id)
		}
	}
	return removed, nil
}
