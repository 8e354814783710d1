package usage

import (
	"context"
	"database/sql"
	"errors"

	"resume-optimizer/internal/shared/storage/db"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a usage store over the users table.
func NewPGStore(sqlDB *sql.DB) *pgStore {
	return &pgStore{DB: sqlDB}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Usage, error) {
	var count, limit int
	err := s.DB.QueryRowContext(ctx, `
SELECT resume_count, resume_limit FROM users WHERE id = $1`, userID).Scan(&count, &limit)
	if errors.Is(err, sql.ErrNoRows) {
		return Usage{}, ErrUnknownUser
	}
	if err != nil {
		return Usage{}, err
	}
	return snapshot(count, limit), nil
}

func (s *pgStore) Consume(ctx context.Context, userID string) (Usage, error) {
	var out Usage
	err := db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		count, limit, err := lock(ctx, tx, userID)
		if err != nil {
			return err
		}
		if count >= limit {
			out = snapshot(count, limit)
			return ErrLimitReached
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE users SET resume_count = resume_count + 1 WHERE id = $1 AND resume_count < resume_limit`, userID); err != nil {
			return err
		}
		out = snapshot(count+1, limit)
		return nil
	})
	return out, err
}

func (s *pgStore) Release(ctx context.Context, userID string) (Usage, error) {
	var out Usage
	err := db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		count, limit, err := lock(ctx, tx, userID)
		if err != nil {
			return err
		}
		if count == 0 {
			out = snapshot(0, limit)
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE users SET resume_count = resume_count - 1 WHERE id = $1 AND resume_count > 0`, userID); err != nil {
			return err
		}
		out = snapshot(count-1, limit)
		return nil
	})
	return out, err
}

func lock(ctx context.Context, tx *sql.Tx, userID string) (int, int, error) {
	var count, limit int
	err := tx.QueryRowContext(ctx, `
SELECT resume_count, resume_limit FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&count, &limit)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, ErrUnknownUser
	}
	return count, limit, err
}
