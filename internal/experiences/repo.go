package experiences

import "context"

// Repo persists experiences and their bullets. Every call is scoped by user id.
type Repo interface {
	// CreateExperience stores exp and returns it with its assigned display order.
	CreateExperience(ctx context.Context, exp Experience) (Experience, error)
	ListExperiences(ctx context.Context, userID string) ([]Experience, error)
	DeleteExperience(ctx context.Context, userID, experienceID string) error

	CreateBullets(ctx context.Context, userID, experienceID string, bullets []Bullet) error
	ListBullets(ctx context.Context, userID, experienceID string) ([]Bullet, error)
	UpdateBullet(ctx context.Context, userID, bulletID, text string) (Bullet, error)
	DeleteBullet(ctx context.Context, userID, bulletID string) error
}
