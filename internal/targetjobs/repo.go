package targetjobs

import "context"

// Repo persists target jobs. Every call is scoped by user id.
type Repo interface {
	Create(ctx context.Context, job TargetJob) error
	ListByUser(ctx context.Context, userID string) ([]TargetJob, error)
	GetByID(ctx context.Context, userID, jobID string) (TargetJob, error)
	Delete(ctx context.Context, userID, jobID string) error
	UpdateDescription(ctx context.Context, userID, jobID, description string) error
}
