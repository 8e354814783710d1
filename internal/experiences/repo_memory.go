package experiences

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps experiences and bullets in memory.
type MemoryRepo struct {
	mu          sync.RWMutex
	experiences map[string]Experience
	bullets     []Bullet
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{experiences: make(map[string]Experience)}
}

func (r *MemoryRepo) CreateExperience(ctx context.Context, exp Experience) (Experience, error) {
	if err := ctx.Err(); err != nil {
		return Experience{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	maxOrder := 0
	for _, existing := range r.experiences {
		if existing.UserID == exp.UserID && existing.DisplayOrder > maxOrder {
			maxOrder = existing.DisplayOrder
		}
	}
	exp.DisplayOrder = maxOrder + 1
	r.experiences[exp.ID] = exp
	return exp, nil
}

func (r *MemoryRepo) ListExperiences(ctx context.Context, userID string) ([]Experience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Experience, 0)
	for _, exp := range r.experiences {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) DeleteExperience(ctx context.Context, userID, experienceID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.experiences[experienceID]
	if !ok || exp.UserID != userID {
		return ErrNotFound
	}
	delete(r.experiences, experienceID)
	kept := r.bullets[:0]
	for _, b := range r.bullets {
		if b.WorkExperienceID != experienceID {
			kept = append(kept, b)
		}
	}
	r.bullets = kept
	return nil
}

func (r *MemoryRepo) CreateBullets(ctx context.Context, userID, experienceID string, bullets []Bullet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.ownsLocked(userID, experienceID) {
		return ErrNotFound
	}
	for _, b := range bullets {
		b.WorkExperienceID = experienceID
		r.bullets = append(r.bullets, b)
	}
	return nil
}

func (r *MemoryRepo) ListBullets(ctx context.Context, userID, experienceID string) ([]Bullet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Bullet, 0)
	if !r.ownsLocked(userID, experienceID) {
		return out, nil
	}
	for _, b := range r.bullets {
		if b.WorkExperienceID == experienceID && b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *MemoryRepo) UpdateBullet(ctx context.Context, userID, bulletID, text string) (Bullet, error) {
	if err := ctx.Err(); err != nil {
		return Bullet{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bullets {
		if b.ID != bulletID || !b.Active || !r.ownsLocked(userID, b.WorkExperienceID) {
			continue
		}
		r.bullets[i].Text = text
		return r.bullets[i], nil
	}
	return Bullet{}, ErrNotFound
}

func (r *MemoryRepo) DeleteBullet(ctx context.Context, userID, bulletID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bullets {
		if b.ID != bulletID || !r.ownsLocked(userID, b.WorkExperienceID) {
			continue
		}
		r.bullets = append(r.bullets[:i], r.bullets[i+1:]...)
		return nil
	}
	return ErrNotFound
}

func (r *MemoryRepo) ownsLocked(userID, experienceID string) bool {
	exp, ok := r.experiences[experienceID]
	return ok && exp.UserID == userID
}
