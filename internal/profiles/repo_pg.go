package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT full_name, email, phone, linkedin_url, location, education, skills
FROM user_profiles
WHERE user_id = $1`
	p := Profile{UserID: userID}
	var education, skills []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.LinkedInURL,
		&p.Location,
		&education,
		&skills,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Empty(userID), nil
	}
	if err != nil {
		return Profile{}, err
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return Profile{}, fmt.Errorf("decode education: %w", err)
	}
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return Profile{}, fmt.Errorf("decode skills: %w", err)
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

// Upsert replaces every profile field.
func (r *PGRepo) Upsert(ctx context.Context, p Profile) error {
	education, err := json.Marshal(nonNilEducation(p.Education))
	if err != nil {
		return err
	}
	skills, err := json.Marshal(nonNilSkills(p.Skills))
	if err != nil {
		return err
	}
	const query = `
INSERT INTO user_profiles (user_id, full_name, email, phone, linkedin_url, location, education, skills, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (user_id) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  email = EXCLUDED.email,
  phone = EXCLUDED.phone,
  linkedin_url = EXCLUDED.linkedin_url,
  location = EXCLUDED.location,
  education = EXCLUDED.education,
  skills = EXCLUDED.skills,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query,
		p.UserID, p.FullName, p.Email, p.Phone, p.LinkedInURL, p.Location, education, skills,
	)
	return err
}

func nonNilEducation(in []Education) []Education {
	if in == nil {
		return []Education{}
	}
	return in
}

func nonNilSkills(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

var _ Repo = (*PGRepo)(nil)
