package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo(), 0)

	user, err := svc.Register(ctx, "  jane ", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "jane" || user.ResumeCount != 0 || user.ResumeLimit != DefaultResumeLimit {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("password stored in clear")
	}

	got, err := svc.Authenticate(ctx, "jane", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected %s, got %s", user.ID, got.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo(), 0)
	if _, err := svc.Register(ctx, "jane", "a"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "jane", "b"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo(), 0)
	if _, err := svc.Register(ctx, "jane", "right"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "jane", password: "wrong"},
		{name: "unknown user", username: "john", password: "right"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Authenticate(ctx, tt.username, tt.password); !errors.Is(err, ErrAuthenticationFailed) {
				t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
			}
		})
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	svc := NewService(NewMemoryRepo(), 0)
	if _, err := svc.Register(context.Background(), " ", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
