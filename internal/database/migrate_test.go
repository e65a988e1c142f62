package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectBaseTables(mock sqlmock.Sqlmock) {
	for _, table := range []string{"users", "destinations", "tour_packages", "bookings", "payments", "reviews"} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func expectColumnPresent(mock sqlmock.Sqlmock, table, column string) {
	mock.ExpectQuery("information_schema.COLUMNS").
		WithArgs("tours", table, column).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
}

func TestEnsureSchemaIdempotentOnCurrentDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectBaseTables(mock)
	expectColumnPresent(mock, "bookings", "payment_date")
	expectColumnPresent(mock, "bookings", "card_last_four")
	expectColumnPresent(mock, "destinations", "is_international")

	if err := EnsureSchema(context.Background(), db, "tours", "India"); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaAddsLateColumnsAndBackfills(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectBaseTables(mock)

	mock.ExpectQuery("information_schema.COLUMNS").
		WithArgs("tours", "bookings", "payment_date").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("ALTER TABLE bookings ADD COLUMN payment_date").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("information_schema.COLUMNS").
		WithArgs("tours", "bookings", "card_last_four").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("ALTER TABLE bookings ADD COLUMN card_last_four").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("information_schema.COLUMNS").
		WithArgs("tours", "destinations", "is_international").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("ALTER TABLE destinations ADD COLUMN is_international").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE destinations SET is_international").
		WithArgs("India").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := EnsureSchema(context.Background(), db, "tours", "India"); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
