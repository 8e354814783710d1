package targetjobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores target jobs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]TargetJob
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]TargetJob)}
}

func (r *MemoryRepo) Create(ctx context.Context, job TargetJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]TargetJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]TargetJob, 0)
	for _, job := range r.jobs {
		if job.UserID == userID {
			out = append(out, job)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].DateAdded.Equal(out[j].DateAdded) {
			return out[i].ID > out[j].ID
		}
		return out[i].DateAdded.After(out[j].DateAdded)
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, jobID string) (TargetJob, error) {
	if err := ctx.Err(); err != nil {
		return TargetJob{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return TargetJob{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return ErrNotFound
	}
	delete(r.jobs, jobID)
	return nil
}

func (r *MemoryRepo) UpdateDescription(ctx context.Context, userID, jobID, description string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return ErrNotFound
	}
	job.Description = description
	r.jobs[jobID] = job
	return nil
}
