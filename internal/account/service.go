// Package account summarizes the signed-in user's state for the dashboard.
package account

import (
	"context"
	"errors"

	"resume-optimizer/internal/experiences"
	"resume-optimizer/internal/profiles"
	"resume-optimizer/internal/targetjobs"
	"resume-optimizer/internal/usage"
	"resume-optimizer/internal/users"
)

// Warning codes shown alongside the overview.
const (
	WarnProfileIncomplete = "profile_incomplete"
	WarnNoExperiences     = "no_experiences"
	WarnNoBullets         = "no_bullets"
	WarnNoTargetJobs      = "no_target_jobs"
	WarnLimitReached      = "limit_reached"
)

type UserLookup interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

type ProfileReader interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

type PoolReader interface {
	ActivePools(ctx context.Context, userID string) ([]experiences.Pool, error)
}

type JobLister interface {
	List(ctx context.Context, userID string) ([]targetjobs.TargetJob, error)
}

type UsageReader interface {
	Get(ctx context.Context, userID string) (usage.Usage, error)
}

// Overview is the response of GET /me.
type Overview struct {
	User     users.User  `json:"user"`
	Usage    usage.Usage `json:"usage"`
	Warnings []string    `json:"warnings"`
}

type Service struct {
	Users       UserLookup
	Profiles    ProfileReader
	Experiences PoolReader
	Jobs        JobLister
	Usage       UsageReader
}

func NewService(u UserLookup, p ProfileReader, e PoolReader, j JobLister, q UsageReader) *Service {
	return &Service{Users: u, Profiles: p, Experiences: e, Jobs: j, Usage: q}
}

func (s *Service) Overview(ctx context.Context, userID string) (Overview, error) {
	if s == nil || s.Users == nil || s.Usage == nil {
		return Overview{}, errors.New("account service not configured")
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Overview{}, err
	}
	quota, err := s.Usage.Get(ctx, userID)
	if err != nil {
		return Overview{}, err
	}
	// The counter lives in the quota store.
	user.ResumeCount = quota.Count
	user.ResumeLimit = quota.Limit

	out := Overview{User: user, Usage: quota, Warnings: []string{}}
	if s.Profiles != nil {
		p, err := s.Profiles.Get(ctx, userID)
		if err != nil {
			return Overview{}, err
		}
		if p.FullName == "" {
			out.Warnings = append(out.Warnings, WarnProfileIncomplete)
		}
	}
	if s.Experiences != nil {
		pools, err := s.Experiences.ActivePools(ctx, userID)
		if err != nil {
			return Overview{}, err
		}
		switch {
		case len(pools) == 0:
			out.Warnings = append(out.Warnings, WarnNoExperiences)
		case !experiences.HasBullets(pools):
			out.Warnings = append(out.Warnings, WarnNoBullets)
		}
	}
	if s.Jobs != nil {
		jobs, err := s.Jobs.List(ctx, userID)
		if err != nil {
			return Overview{}, err
		}
		if len(jobs) == 0 {
			out.Warnings = append(out.Warnings, WarnNoTargetJobs)
		}
	}
	if !quota.CanGenerate() {
		out.Warnings = append(out.Warnings, WarnLimitReached)
	}
	return out, nil
}
