package organizations

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
)

var orgColumnNames = []string{
	"id", "user_id", "name", "description", "industry", "location", "company_size",
	"website", "email", "logo_url", "linkedin_url", "linkedin_data", "last_updated", "created_at",
}

func TestPGRepoUpsertOnUserConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	org := Organization{
		ID:          "org-1",
		UserID:      "user-1",
		Name:        "Acme",
		Industry:    "Aerospace",
		LinkedInURL: "https://www.linkedin.com/company/acme",
		LastUpdated: now,
	}

	mock.ExpectQuery(`INSERT INTO organizations .* ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(
			"org-1",
			"user-1",
			"Acme",
			nil, // description
			"Aerospace",
			nil, // location
			nil, // company_size
			nil, // website
			nil, // email
			nil, // logo_url
			"https://www.linkedin.com/company/acme",
			nil, // linkedin_data
			now,
		).
		WillReturnRows(sqlmock.NewRows(orgColumnNames).AddRow(
			"org-0", "user-1", "Acme", nil, "Aerospace", nil, nil, nil, nil, nil,
			"https://www.linkedin.com/company/acme", nil, now, now.Add(-time.Hour),
		))

	stored, err := (&PGRepo{DB: db}).Upsert(context.Background(), org)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if stored.ID != "org-0" {
		t.Fatalf("expected existing id to be kept, got %q", stored.ID)
	}
	if !stored.CreatedAt.Equal(now.Add(-time.Hour)) {
		t.Fatalf("unexpected created_at %v", stored.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetMapsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT .* FROM organizations WHERE user_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = (&PGRepo{DB: db}).Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetScansNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .* FROM organizations WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(orgColumnNames).AddRow(
			"org-1", "user-1", "Acme", "Rockets", nil, "Berlin", "51-200", nil, "jobs@acme.io", nil, nil,
			[]byte(`{"company_name":"Acme"}`), now, now,
		))

	org, err := (&PGRepo{DB: db}).Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if org.Description != "Rockets" || org.Industry != "" || org.CompanySize != "51-200" || org.Email != "jobs@acme.io" {
		t.Fatalf("unexpected organization %+v", org)
	}
	if string(org.LinkedInData) != `{"company_name":"Acme"}` {
		t.Fatalf("unexpected linkedin_data %s", org.LinkedInData)
	}
}

func TestPGRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("DELETE FROM organizations WHERE user_id").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (&PGRepo{DB: db}).Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
