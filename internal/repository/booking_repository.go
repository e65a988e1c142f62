package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/roamio/tour-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  A booking is created
// in the pending state together with its payment row inside one transaction
// and only the payment workflow moves it to confirmed.  All reads that
// serve user-facing pages are scoped by user id so one user can never see
// another's booking.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transactions spanning the booking
// and payment repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingRecord mirrors the bookings table for insertion.  CreateTx fills
// ID and leaves the generated defaults (status, booking_date) to the
// database.
type BookingRecord struct {
	ID             uint64
	UserID         uint64
	PackageID      uint64
	TravelDate     time.Time
	NumberOfPeople uint32
	TotalAmount    float64
}

// CreateTx inserts a pending booking within an existing transaction and
// populates the generated ID.  The caller commits or rolls back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *BookingRecord) error {
	const q = `INSERT INTO bookings (user_id, package_id, travel_date, number_of_people, total_amount, status)
			   VALUES (?, ?, ?, ?, ?, 'pending')`
	res, err := tx.ExecContext(ctx, q,
		rec.UserID, rec.PackageID, rec.TravelDate.Format("2006-01-02"),
		rec.NumberOfPeople, rec.TotalAmount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// BookingDetail is a booking joined with its package and destination for
// user-facing documents (payment page, confirmation, my-bookings).
type BookingDetail struct {
	ID              uint64     `json:"id"`
	UserID          uint64     `json:"user_id"`
	PackageID       uint64     `json:"package_id"`
	TravelDate      time.Time  `json:"travel_date"`
	NumberOfPeople  uint32     `json:"number_of_people"`
	TotalAmount     float64    `json:"total_amount"`
	Status          string     `json:"status"`
	BookingDate     time.Time  `json:"booking_date"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	CardLastFour    *string    `json:"card_last_four,omitempty"`
	PackageName     string     `json:"package_name"`
	PackagePrice    float64    `json:"package_price"`
	DestinationName string     `json:"destination_name"`
	Country         string     `json:"country"`
}

const bookingDetailSelect = `
		SELECT b.id, b.user_id, b.package_id, b.travel_date, b.number_of_people,
			   b.total_amount, b.status, b.booking_date, b.payment_date, b.card_last_four,
			   tp.name AS package_name, tp.price AS package_price,
			   d.name AS destination_name, d.country
		FROM bookings b
		JOIN tour_packages tp ON tp.id = b.package_id
		JOIN destinations d ON d.id = tp.destination_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (*BookingDetail, error) {
	var (
		det      BookingDetail
		payDate  sql.NullTime
		lastFour sql.NullString
	)
	err := row.Scan(&det.ID, &det.UserID, &det.PackageID, &det.TravelDate,
		&det.NumberOfPeople, &det.TotalAmount, &det.Status, &det.BookingDate,
		&payDate, &lastFour,
		&det.PackageName, &det.PackagePrice, &det.DestinationName, &det.Country)
	if err != nil {
		return nil, err
	}
	if payDate.Valid {
		t := payDate.Time
		det.PaymentDate = &t
	}
	if lastFour.Valid {
		lf := lastFour.String
		det.CardLastFour = &lf
	}
	return &det, nil
}

// GetByIDForUser returns one booking owned by the given user.
// ErrBookingNotFound covers both a missing row and foreign ownership.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
	det, err := scanBookingDetail(r.db.QueryRowContext(ctx,
		bookingDetailSelect+"\n        WHERE b.id = ? AND b.user_id = ?", bookingID, userID))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return det, nil
}

// GetForUserInStatus is GetByIDForUser restricted to one booking status.
// The payment page wants pending bookings, the success page confirmed ones.
func (r *BookingRepo) GetForUserInStatus(ctx context.Context, bookingID, userID uint64, status string) (*BookingDetail, error) {
	det, err := scanBookingDetail(r.db.QueryRowContext(ctx,
		bookingDetailSelect+"\n        WHERE b.id = ? AND b.user_id = ? AND b.status = ?",
		bookingID, userID, status))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return det, nil
}

// GetPendingForUserTx loads a pending booking owned by the user inside a
// transaction.  Used by payment capture so the status check and the update
// see the same row.  ErrBookingNotFound also covers bookings that were
// already processed.
func (r *BookingRepo) GetPendingForUserTx(ctx context.Context, tx *sql.Tx, bookingID, userID uint64) (*BookingDetail, error) {
	det, err := scanBookingDetail(tx.QueryRowContext(ctx,
		bookingDetailSelect+"\n        WHERE b.id = ? AND b.user_id = ? AND b.status = 'pending'",
		bookingID, userID))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return det, nil
}

// ConfirmTx transitions a pending booking to confirmed, stamping the
// payment date and the last four card digits.  The status predicate keeps
// a double capture from rewriting an already confirmed booking.
func (r *BookingRepo) ConfirmTx(ctx context.Context, tx *sql.Tx, bookingID uint64, cardLastFour string) error {
	const q = `UPDATE bookings
			   SET status = 'confirmed', payment_date = NOW(), card_last_four = ?
			   WHERE id = ? AND status = 'pending'`
	res, err := tx.ExecContext(ctx, q, cardLastFour, bookingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListByUser returns the user's bookings newest-first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingDetailSelect+"\n        WHERE b.user_id = ?\n        ORDER BY b.booking_date DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookingDetail, 0)
	for rows.Next() {
		det, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *det)
	}
	return out, rows.Err()
}

// ListAll returns every booking, newest-first.  Admin dashboard only.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, package_id, travel_date, number_of_people, total_amount,
				status, booking_date, payment_date, card_last_four
		 FROM bookings ORDER BY booking_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var (
			b        model.Booking
			payDate  sql.NullTime
			lastFour sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.PackageID, &b.TravelDate,
			&b.NumberOfPeople, &b.TotalAmount, &b.Status, &b.BookingDate,
			&payDate, &lastFour); err != nil {
			return nil, err
		}
		if payDate.Valid {
			t := payDate.Time
			b.PaymentDate = &t
		}
		if lastFour.Valid {
			lf := lastFour.String
			b.CardLastFour = &lf
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
