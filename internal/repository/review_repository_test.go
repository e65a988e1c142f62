package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestExistsForUserAndPackage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM reviews").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery("SELECT id FROM reviews").
		WithArgs(1, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewReviewRepo(db)
	exists, err := repo.ExistsForUserAndPackage(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("exists check: %v", err)
	}
	if !exists {
		t.Fatalf("expected existing review to be reported")
	}
	exists, err = repo.ExistsForUserAndPackage(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("exists check: %v", err)
	}
	if exists {
		t.Fatalf("expected no review for unreviewed package")
	}
}

func TestCreateOnceRejectsSecondReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM reviews").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	repo := NewReviewRepo(db)
	_, err = repo.CreateOnce(context.Background(), 1, 2, 5, "again")
	if !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
	// No INSERT may have been attempted.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListRecentAppliesLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("ORDER BY r.created_at DESC LIMIT").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "package_id", "rating", "comment", "created_at", "user_name", "package_name",
		}))

	repo := NewReviewRepo(db)
	if _, err := repo.ListRecent(context.Background(), 3); err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("limit not applied: %v", err)
	}
}
