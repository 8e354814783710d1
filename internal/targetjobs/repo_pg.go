package targetjobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, job TargetJob) error {
	const query = `
INSERT INTO target_jobs (id, user_id, company_name, job_title, job_url, job_description, date_added)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID, job.UserID, job.Company, job.Title, job.URL, job.Description, job.DateAdded,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]TargetJob, error) {
	const query = `
SELECT id, user_id, company_name, job_title, job_url, job_description, date_added
FROM target_jobs
WHERE user_id = $1
ORDER BY date_added DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TargetJob, 0)
	for rows.Next() {
		var job TargetJob
		if err := rows.Scan(&job.ID, &job.UserID, &job.Company, &job.Title, &job.URL, &job.Description, &job.DateAdded); err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, jobID string) (TargetJob, error) {
	const query = `
SELECT id, user_id, company_name, job_title, job_url, job_description, date_added
FROM target_jobs
WHERE id = $1 AND user_id = $2`
	var job TargetJob
	err := r.DB.QueryRowContext(ctx, query, jobID, userID).
		Scan(&job.ID, &job.UserID, &job.Company, &job.Title, &job.URL, &job.Description, &job.DateAdded)
	if errors.Is(err, sql.ErrNoRows) {
		return TargetJob{}, ErrNotFound
	}
	if err != nil {
		return TargetJob{}, err
	}
	return job, nil
}

// Delete removes the job; its generated resumes go with it through the FK cascade.
func (r *PGRepo) Delete(ctx context.Context, userID, jobID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM target_jobs WHERE id = $1 AND user_id = $2`, jobID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) UpdateDescription(ctx context.Context, userID, jobID, description string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE target_jobs SET job_description = $1 WHERE id = $2 AND user_id = $3`,
		description, jobID, userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
