package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// createStatements holds the base schema.  Every statement is idempotent so
// EnsureSchema can run on every boot against a new or an existing database.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(20),
		password_hash VARCHAR(255) NOT NULL,
		role ENUM('user','admin') NOT NULL DEFAULT 'user',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS destinations (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		country VARCHAR(100) NOT NULL,
		description TEXT,
		image_url VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS tour_packages (
		id INT AUTO_INCREMENT PRIMARY KEY,
		destination_id INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		duration_days INT NOT NULL DEFAULT 1,
		price DECIMAL(10,2) NOT NULL,
		max_participants INT NOT NULL,
		status ENUM('active','inactive') NOT NULL DEFAULT 'active',
		image_url VARCHAR(255),
		FOREIGN KEY (destination_id) REFERENCES destinations(id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		package_id INT NOT NULL,
		travel_date DATE NOT NULL,
		number_of_people INT NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		status ENUM('pending','confirmed','cancelled') NOT NULL DEFAULT 'pending',
		booking_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (package_id) REFERENCES tour_packages(id)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INT AUTO_INCREMENT PRIMARY KEY,
		booking_id INT NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		status ENUM('pending','completed') NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (booking_id) REFERENCES bookings(id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		package_id INT NOT NULL,
		rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (package_id) REFERENCES tour_packages(id)
	)`,
}

// EnsureSchema applies the base schema and the columns that were added to it
// after the first release: bookings.payment_date, bookings.card_last_four and
// destinations.is_international.  The late columns are detected through
// information_schema because older MySQL versions reject
// ADD COLUMN IF NOT EXISTS.  Runs once at startup, never on the request path.
func EnsureSchema(ctx context.Context, db *sql.DB, dbName, homeCountry string) error {
	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	if err := ensureColumn(ctx, db, dbName, "bookings", "payment_date",
		"ALTER TABLE bookings ADD COLUMN payment_date DATETIME NULL"); err != nil {
		return err
	}
	if err := ensureColumn(ctx, db, dbName, "bookings", "card_last_four",
		"ALTER TABLE bookings ADD COLUMN card_last_four VARCHAR(4) NULL"); err != nil {
		return err
	}

	added, err := ensureColumnAdded(ctx, db, dbName, "destinations", "is_international",
		"ALTER TABLE destinations ADD COLUMN is_international BOOLEAN NOT NULL DEFAULT FALSE")
	if err != nil {
		return err
	}
	if added {
		// Backfill: anything outside the home country is international.
		if _, err := db.ExecContext(ctx,
			"UPDATE destinations SET is_international = TRUE WHERE country <> ?", homeCountry); err != nil {
			return fmt.Errorf("backfill is_international: %w", err)
		}
		log.Printf("schema: backfilled destinations.is_international (home=%s)", homeCountry)
	}
	return nil
}

func ensureColumn(ctx context.Context, db *sql.DB, dbName, table, column, alter string) error {
	_, err := ensureColumnAdded(ctx, db, dbName, table, column, alter)
	return err
}

// ensureColumnAdded adds the column when missing and reports whether it did.
func ensureColumnAdded(ctx context.Context, db *sql.DB, dbName, table, column, alter string) (bool, error) {
	const q = `SELECT COUNT(*) FROM information_schema.COLUMNS
	           WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND COLUMN_NAME = ?`
	var n int
	if err := db.QueryRowContext(ctx, q, dbName, table, column).Scan(&n); err != nil {
		return false, fmt.Errorf("check column %s.%s: %w", table, column, err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := db.ExecContext(ctx, alter); err != nil {
		return false, fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	log.Printf("schema: added column %s.%s", table, column)
	return true, nil
}
