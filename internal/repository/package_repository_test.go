package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func availabilityColumns() []string {
	return []string{
		"id", "destination_id", "name", "description", "duration_days",
		"price", "max_participants", "image_url",
		"destination_name", "country", "destination_description", "destination_image",
		"available_seats",
	}
}

func TestListAvailableNullAggregateMeansFullCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(availabilityColumns()).
		AddRow(1, 1, "Beach Escape", "sun", 5, 500.0, 20, "a.jpg", "Goa", "India", "", "", nil).
		AddRow(2, 1, "Hill Trek", "cold", 3, 300.0, 10, "b.jpg", "Manali", "India", "", "", 4)
	mock.ExpectQuery("FROM tour_packages tp").WillReturnRows(rows)

	repo := NewPackageRepo(db)
	got, err := repo.ListAvailable(context.Background(), SortPriceDesc, false)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(got))
	}
	if got[0].AvailableSeats != 20 {
		t.Fatalf("NULL aggregate should surface as full capacity, got %d", got[0].AvailableSeats)
	}
	if got[1].AvailableSeats != 4 {
		t.Fatalf("expected 4 available seats, got %d", got[1].AvailableSeats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAvailableFloorsOverbookedAtZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(availabilityColumns()).
		AddRow(1, 1, "Beach Escape", "sun", 5, 500.0, 20, "a.jpg", "Goa", "India", "", "", -3)
	mock.ExpectQuery("FROM tour_packages tp").WillReturnRows(rows)

	repo := NewPackageRepo(db)
	got, err := repo.ListAvailable(context.Background(), SortPriceDesc, false)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if got[0].AvailableSeats != 0 {
		t.Fatalf("overbooked package should report 0 seats, got %d", got[0].AvailableSeats)
	}
}

func TestListAvailableFilterAddsHavingClause(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("HAVING available_seats > 0 OR available_seats IS NULL").
		WillReturnRows(sqlmock.NewRows(availabilityColumns()))

	repo := NewPackageRepo(db)
	if _, err := repo.ListAvailable(context.Background(), SortSeatsDesc, true); err != nil {
		t.Fatalf("ListAvailable with filter: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("filtered query missing HAVING clause: %v", err)
	}
}

func TestListAvailableUnknownSortFallsBackToPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("ORDER BY tp.price DESC").
		WillReturnRows(sqlmock.NewRows(availabilityColumns()))

	repo := NewPackageRepo(db)
	if _, err := repo.ListAvailable(context.Background(), "bogus; DROP TABLE", false); err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unknown sort key should fall back to price: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM tour_packages WHERE id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewPackageRepo(db)
	_, err = repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}
