package profiles

import (
	"context"
	"errors"
	"strings"
)

// Service reads and replaces user profiles.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Get returns the user's profile, empty when never saved.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, errors.New("user id is required")
	}
	return s.Repo.Get(ctx, userID)
}

// Replace overwrites every field of the profile with the given values.
func (s *Service) Replace(ctx context.Context, p Profile) (Profile, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return Profile{}, errors.New("user id is required")
	}
	p = normalize(p)
	if err := s.Repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func normalize(p Profile) Profile {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.LinkedInURL = strings.TrimSpace(p.LinkedInURL)
	p.Location = strings.TrimSpace(p.Location)

	education := make([]Education, 0, len(p.Education))
	for _, e := range p.Education {
		e.Degree = strings.TrimSpace(e.Degree)
		e.School = strings.TrimSpace(e.School)
		e.Year = strings.TrimSpace(e.Year)
		if e.Degree == "" && e.School == "" && e.Year == "" {
			continue
		}
		education = append(education, e)
	}
	p.Education = education

	skills := make([]string, 0, len(p.Skills))
	for _, skill := range p.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	p.Skills = skills
	return p
}

// ParseSkills splits a comma-separated skills line.
func ParseSkills(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
