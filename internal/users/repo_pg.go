package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"resume-optimizer/internal/shared/storage/db"
)

const uniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts the user and its empty profile in one transaction.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	err := db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO users (id, username, password_hash, resume_count, resume_limit, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
			user.ID, user.Username, user.PasswordHash, user.ResumeCount, user.ResumeLimit, user.CreatedAt,
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO user_profiles (user_id) VALUES ($1)`, user.ID)
		return err
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateUsername
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.getOne(ctx, `
SELECT id, username, password_hash, resume_count, resume_limit, created_at
FROM users WHERE id = $1`, userID)
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	return r.getOne(ctx, `
SELECT id, username, password_hash, resume_count, resume_limit, created_at
FROM users WHERE lower(username) = lower($1)`, username)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg string) (User, error) {
	var user User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.ResumeCount,
		&user.ResumeLimit,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)
