package usage

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestConsumeStopsAtLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(2)

	for i := 1; i <= 2; i++ {
		u, err := svc.Consume(ctx, "u-1")
		if err != nil {
			t.Fatalf("Consume %d: %v", i, err)
		}
		if u.Count != i {
			t.Fatalf("expected count %d, got %d", i, u.Count)
		}
	}
	u, err := svc.Consume(ctx, "u-1")
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if u.Count != 2 || u.Remaining != 0 {
		t.Fatalf("unexpected usage after limit: %+v", u)
	}

	ok, _, err := svc.CanGenerate(ctx, "u-1")
	if err != nil || ok {
		t.Fatalf("expected CanGenerate false, got %v %v", ok, err)
	}
}

func TestReleaseUndoesConsume(t *testing.T) {
	ctx := context.Background()
	svc := NewService(5)
	if _, err := svc.Consume(ctx, "u-1"); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	u, err := svc.Release(ctx, "u-1")
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if u.Count != 0 || u.Remaining != 5 {
		t.Fatalf("unexpected usage: %+v", u)
	}
	if u, _ = svc.Release(ctx, "u-1"); u.Count != 0 {
		t.Fatalf("release below zero: %+v", u)
	}
}

func TestConcurrentConsumeNeverExceedsLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Consume(ctx, "u-1"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Fatalf("expected exactly 10 successes, got %d", succeeded)
	}
	u, _ := svc.Get(ctx, "u-1")
	if u.Count != 10 {
		t.Fatalf("expected count 10, got %d", u.Count)
	}
}
