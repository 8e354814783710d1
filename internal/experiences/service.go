package experiences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service manages work history and accomplishment bullets.
type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// AddExperience appends an experience after the user's existing ones.
func (s *Service) AddExperience(ctx context.Context, userID string, in ExperienceInput) (Experience, error) {
	if s == nil || s.Repo == nil {
		return Experience{}, errors.New("experiences service not configured")
	}
	exp := Experience{
		ID:        uuid.NewString(),
		UserID:    userID,
		Company:   strings.TrimSpace(in.Company),
		Title:     strings.TrimSpace(in.Title),
		StartDate: strings.TrimSpace(in.StartDate),
		EndDate:   strings.TrimSpace(in.EndDate),
		IsCurrent: in.IsCurrent,
		CreatedAt: s.now().UTC(),
	}
	if userID == "" || exp.Company == "" || exp.Title == "" {
		return Experience{}, fmt.Errorf("%w: company and title are required", ErrInvalidInput)
	}
	if exp.IsCurrent {
		exp.EndDate = ""
	}
	return s.Repo.CreateExperience(ctx, exp)
}

// ListExperiences returns the user's experiences in display order.
func (s *Service) ListExperiences(ctx context.Context, userID string) ([]Experience, error) {
	return s.Repo.ListExperiences(ctx, userID)
}

// DeleteExperience removes an experience and all of its bullets.
func (s *Service) DeleteExperience(ctx context.Context, userID, experienceID string) error {
	return s.Repo.DeleteExperience(ctx, userID, experienceID)
}

// AddBullets stores each non-blank text as an active bullet, in the given order.
func (s *Service) AddBullets(ctx context.Context, userID, experienceID string, texts []string) ([]Bullet, error) {
	now := s.now().UTC()
	bullets := make([]Bullet, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		bullets = append(bullets, Bullet{
			ID:               uuid.NewString(),
			WorkExperienceID: experienceID,
			Text:             text,
			Active:           true,
			CreatedAt:        now.Add(time.Duration(len(bullets)) * time.Microsecond),
		})
	}
	if len(bullets) == 0 {
		return nil, fmt.Errorf("%w: at least one bullet is required", ErrInvalidInput)
	}
	if err := s.Repo.CreateBullets(ctx, userID, experienceID, bullets); err != nil {
		return nil, err
	}
	return bullets, nil
}

// ListBullets returns the active bullets of one experience in creation order.
// An experience the user does not own yields an empty list.
func (s *Service) ListBullets(ctx context.Context, userID, experienceID string) ([]Bullet, error) {
	return s.Repo.ListBullets(ctx, userID, experienceID)
}

// UpdateBullet replaces the bullet text.
func (s *Service) UpdateBullet(ctx context.Context, userID, bulletID, text string) (Bullet, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Bullet{}, fmt.Errorf("%w: bullet text is required", ErrInvalidInput)
	}
	return s.Repo.UpdateBullet(ctx, userID, bulletID, text)
}

func (s *Service) DeleteBullet(ctx context.Context, userID, bulletID string) error {
	return s.Repo.DeleteBullet(ctx, userID, bulletID)
}

// ActivePools returns every experience in display order with its active bullets.
func (s *Service) ActivePools(ctx context.Context, userID string) ([]Pool, error) {
	exps, err := s.Repo.ListExperiences(ctx, userID)
	if err != nil {
		return nil, err
	}
	pools := make([]Pool, 0, len(exps))
	for _, exp := range exps {
		bullets, err := s.Repo.ListBullets(ctx, userID, exp.ID)
		if err != nil {
			return nil, err
		}
		pools = append(pools, Pool{Experience: exp, Bullets: bullets})
	}
	return pools, nil
}

// HasBullets reports whether any pool has at least one bullet.
func HasBullets(pools []Pool) bool {
	for _, p := range pools {
		if len(p.Bullets) > 0 {
			return true
		}
	}
	return false
}

// SplitLines turns a pasted block into one entry per line.
func SplitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.Split(raw, "\n")
}
