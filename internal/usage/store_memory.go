package usage

import (
	"context"
	"sync"
)

type counter struct {
	count int
	limit int
}

type memoryStore struct {
	mu           sync.Mutex
	defaultLimit int
	data         map[string]counter
}

func newMemoryStore(defaultLimit int) *memoryStore {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &memoryStore{
		defaultLimit: defaultLimit,
		data:         make(map[string]counter),
	}
}

func (s *memoryStore) load(userID string) counter {
	c, ok := s.data[userID]
	if !ok {
		c = counter{limit: s.defaultLimit}
	}
	return c
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load(userID)
	return snapshot(c.count, c.limit), nil
}

func (s *memoryStore) Consume(ctx context.Context, userID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load(userID)
	if c.count >= c.limit {
		return snapshot(c.count, c.limit), ErrLimitReached
	}
	c.count++
	s.data[userID] = c
	return snapshot(c.count, c.limit), nil
}

func (s *memoryStore) Release(ctx context.Context, userID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.load(userID)
	if c.count > 0 {
		c.count--
	}
	s.data[userID] = c
	return snapshot(c.count, c.limit), nil
}
