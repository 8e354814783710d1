package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles registration and login.
type Service struct {
	Repo        Repo
	ResumeLimit int
	now         func() time.Time
}

// NewService constructs a Service. A non-positive limit uses DefaultResumeLimit.
func NewService(repo Repo, resumeLimit int) *Service {
	if resumeLimit <= 0 {
		resumeLimit = DefaultResumeLimit
	}
	return &Service{Repo: repo, ResumeLimit: resumeLimit, now: time.Now}
}

// Register creates a user with a zero resume count and an empty profile.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		ResumeCount:  0,
		ResumeLimit:  s.ResumeLimit,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate returns the user when the credentials match.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrAuthenticationFailed
	}
	if err != nil {
		return User{}, err
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return User{}, ErrAuthenticationFailed
	}
	return user, nil
}

// GetByID loads a user.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}
