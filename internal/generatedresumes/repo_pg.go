package generatedresumes

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

const selectJoined = `
SELECT g.id, g.user_id, g.target_job_id, g.selections, g.resume_html, g.file_name,
       g.storage_key, g.size_bytes, g.page_count, g.created_at, j.company_name, j.job_title
FROM generated_resumes g
JOIN target_jobs j ON j.id = g.target_job_id`

// Create inserts a generated resume.
func (r *PGRepo) Create(ctx context.Context, resume GeneratedResume) error {
	selections, err := json.Marshal(resume.Selections)
	if err != nil {
		return fmt.Errorf("encode selections: %w", err)
	}
	const query = `
INSERT INTO generated_resumes (
    id, user_id, target_job_id, selections, resume_html, file_name, storage_key, size_bytes, page_count, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.TargetJobID,
		selections,
		resume.HTML,
		resume.Filename,
		resume.StorageKey,
		resume.SizeBytes,
		resume.PageCount,
		resume.CreatedAt,
	)
	return err
}

// GetByID returns a generated resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, generatedResumeID string) (GeneratedResume, error) {
	row := r.DB.QueryRowContext(ctx, selectJoined+`
WHERE g.id = $1 AND g.user_id = $2
LIMIT 1`, generatedResumeID, userID)
	resume, err := scanResume(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GeneratedResume{}, ErrNotFound
	}
	return resume, err
}

// ListByUser lists generated resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, selectJoined+`
WHERE g.user_id = $1
ORDER BY g.created_at DESC
LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GeneratedResume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeleteByTargetJob(ctx context.Context, userID, targetJobID string) ([]GeneratedResume, error) {
	rows, err := r.DB.QueryContext(ctx, `
DELETE FROM generated_resumes
WHERE target_job_id = $1 AND user_id = $2
RETURNING id, storage_key`, targetJobID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GeneratedResume, 0)
	for rows.Next() {
		resume := GeneratedResume{UserID: userID, TargetJobID: targetJobID}
		if err := rows.Scan(&resume.ID, &resume.StorageKey); err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (GeneratedResume, error) {
	var resume GeneratedResume
	var selections []byte
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.TargetJobID,
		&selections,
		&resume.HTML,
		&resume.Filename,
		&resume.StorageKey,
		&resume.SizeBytes,
		&resume.PageCount,
		&resume.CreatedAt,
		&resume.JobCompany,
		&resume.JobTitle,
	); err != nil {
		return GeneratedResume{}, err
	}
	if len(selections) > 0 {
		if err := json.Unmarshal(selections, &resume.Selections); err != nil {
			return GeneratedResume{}, fmt.Errorf("decode selections: %w", err)
		}
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
