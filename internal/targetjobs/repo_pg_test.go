package targetjobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListOrdersByDateAddedDesc(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("FROM target_jobs\\s+WHERE user_id = \\$1\\s+ORDER BY date_added DESC").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "company_name", "job_title", "job_url", "job_description", "date_added"}).
			AddRow("j-2", "u-1", "Globex", "Dev", "", "", now).
			AddRow("j-1", "u-1", "Acme Corp", "PM", "https://jobs.example/1", "Seeking", now.Add(-time.Hour)))

	jobs, err := (&PGRepo{DB: db}).ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID != "j-2" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}
}

func TestPGRepoUpdateDescriptionScoped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE target_jobs SET job_description").
		WithArgs("text", "j-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (&PGRepo{DB: db}).UpdateDescription(context.Background(), "intruder", "j-1", "text"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM target_jobs").
		WithArgs("j-1", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := (&PGRepo{DB: db}).GetByID(context.Background(), "u-1", "j-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
