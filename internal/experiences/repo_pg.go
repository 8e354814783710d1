package experiences

import (
	"context"
	"database/sql"
	"errors"

	"resume-optimizer/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateExperience assigns display_order = max + 1 while holding the user row
// lock, so concurrent adds for one user serialize.
func (r *PGRepo) CreateExperience(ctx context.Context, exp Experience) (Experience, error) {
	const query = `
INSERT INTO work_experiences (id, user_id, company, title, start_date, end_date, is_current, display_order, created_at)
SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::text, $6::text, $7::boolean, COALESCE(MAX(display_order), 0) + 1, $8::timestamptz
FROM work_experiences WHERE user_id = $2
RETURNING display_order`
	err := db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var locked string
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, exp.UserID).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, query,
			exp.ID, exp.UserID, exp.Company, exp.Title, exp.StartDate, exp.EndDate, exp.IsCurrent, exp.CreatedAt,
		).Scan(&exp.DisplayOrder)
	})
	if err != nil {
		return Experience{}, err
	}
	return exp, nil
}

func (r *PGRepo) ListExperiences(ctx context.Context, userID string) ([]Experience, error) {
	const query = `
SELECT id, user_id, company, title, start_date, end_date, is_current, display_order, created_at
FROM work_experiences
WHERE user_id = $1
ORDER BY display_order ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Experience, 0)
	for rows.Next() {
		var exp Experience
		if err := rows.Scan(
			&exp.ID,
			&exp.UserID,
			&exp.Company,
			&exp.Title,
			&exp.StartDate,
			&exp.EndDate,
			&exp.IsCurrent,
			&exp.DisplayOrder,
			&exp.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

// DeleteExperience removes the experience; bullets go with it through the FK cascade.
func (r *PGRepo) DeleteExperience(ctx context.Context, userID, experienceID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM work_experiences WHERE id = $1 AND user_id = $2`, experienceID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) CreateBullets(ctx context.Context, userID, experienceID string, bullets []Bullet) error {
	return db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := ownsExperience(ctx, tx, userID, experienceID); err != nil {
			return err
		}
		// seq is assigned in insert order.
		for _, b := range bullets {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO experience_bullets (id, work_experience_id, bullet_text, is_active, created_at)
VALUES ($1, $2, $3, $4, $5)`,
				b.ID, experienceID, b.Text, b.Active, b.CreatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListBullets joins through the owner, so an experience that is gone or
// belongs to someone else simply has no bullets.
func (r *PGRepo) ListBullets(ctx context.Context, userID, experienceID string) ([]Bullet, error) {
	const query = `
SELECT b.id, b.work_experience_id, b.bullet_text, b.is_active, b.created_at
FROM experience_bullets b
JOIN work_experiences w ON w.id = b.work_experience_id
WHERE b.work_experience_id = $1 AND w.user_id = $2 AND b.is_active
ORDER BY b.seq ASC`
	rows, err := r.DB.QueryContext(ctx, query, experienceID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Bullet, 0)
	for rows.Next() {
		var b Bullet
		if err := rows.Scan(&b.ID, &b.WorkExperienceID, &b.Text, &b.Active, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateBullet(ctx context.Context, userID, bulletID, text string) (Bullet, error) {
	const query = `
UPDATE experience_bullets b
SET bullet_text = $1
FROM work_experiences w
WHERE b.id = $2 AND b.work_experience_id = w.id AND w.user_id = $3 AND b.is_active
RETURNING b.id, b.work_experience_id, b.bullet_text, b.is_active, b.created_at`
	var b Bullet
	err := r.DB.QueryRowContext(ctx, query, text, bulletID, userID).
		Scan(&b.ID, &b.WorkExperienceID, &b.Text, &b.Active, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Bullet{}, ErrNotFound
	}
	if err != nil {
		return Bullet{}, err
	}
	return b, nil
}

func (r *PGRepo) DeleteBullet(ctx context.Context, userID, bulletID string) error {
	const query = `
DELETE FROM experience_bullets b
USING work_experiences w
WHERE b.id = $1 AND b.work_experience_id = w.id AND w.user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, bulletID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func ownsExperience(ctx context.Context, q queryRower, userID, experienceID string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM work_experiences WHERE id = $1 AND user_id = $2`, experienceID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
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
