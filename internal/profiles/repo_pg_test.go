package profiles

import (
	"context"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoGetDecodesJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT full_name, email").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"full_name", "email", "phone", "linkedin_url", "location", "education", "skills"}).
			AddRow("Jane Doe", "jane@example.com", "", "", "", []byte(`[{"degree":"BS","school":"UT","year":"2015"}]`), []byte(`["Go"]`)))

	p, err := (&PGRepo{DB: db}).Get(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(p.Education, []Education{{Degree: "BS", School: "UT", Year: "2015"}}) {
		t.Fatalf("unexpected education %+v", p.Education)
	}
	if !reflect.DeepEqual(p.Skills, []string{"Go"}) {
		t.Fatalf("unexpected skills %+v", p.Skills)
	}
}

func TestPGRepoGetMissingRowIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT full_name").
		WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows([]string{"full_name", "email", "phone", "linkedin_url", "location", "education", "skills"}))

	p, err := (&PGRepo{DB: db}).Get(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.UserID != "u-2" || p.FullName != "" {
		t.Fatalf("expected empty profile, got %+v", p)
	}
}

func TestPGRepoUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO user_profiles").
		WithArgs("u-1", "Jane", "", "", "", "", []byte(`[]`), []byte(`["Go"]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (&PGRepo{DB: db}).Upsert(context.Background(), Profile{UserID: "u-1", FullName: "Jane", Skills: []string{"Go"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
