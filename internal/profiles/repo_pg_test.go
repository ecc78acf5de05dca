package profiles

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
)

func TestPGRepoGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles")).
		WithArgs("u1").
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	if _, err := repo.Get(context.Background(), "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoUpsertStoresNullForEmptyKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "gemini_api_key_enc", "created_at", "updated_at"}).
		AddRow("p1", "u1", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_profiles")).
		WithArgs("p1", "u1", nil).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	rec, err := repo.Upsert(context.Background(), Record{ID: "p1", UserID: "u1"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if rec.SealedKey != "" || !rec.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected record %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
