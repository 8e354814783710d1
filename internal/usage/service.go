package usage

import "context"

type store interface {
	Get(ctx context.Context, userID string) (Usage, error)
	Consume(ctx context.Context, userID string) (Usage, error)
	Release(ctx context.Context, userID string) (Usage, error)
}

// Service manages resume quotas via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService(defaultLimit int) *Service {
	return &Service{store: newMemoryStore(defaultLimit)}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Get returns the current usage for a user.
func (s *Service) Get(ctx context.Context, userID string) (Usage, error) {
	return s.store.Get(ctx, userID)
}

// CanGenerate reports whether the user's count is below the limit.
func (s *Service) CanGenerate(ctx context.Context, userID string) (bool, Usage, error) {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		return false, Usage{}, err
	}
	return u.CanGenerate(), u, nil
}

// Consume atomically increments the count by one, failing with
// ErrLimitReached when the quota is exhausted.
func (s *Service) Consume(ctx context.Context, userID string) (Usage, error) {
	return s.store.Consume(ctx, userID)
}

// Release undoes a Consume whose generation could not be recorded.
func (s *Service) Release(ctx context.Context, userID string) (Usage, error) {
	return s.store.Release(ctx, userID)
}
