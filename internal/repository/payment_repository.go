package repository

import (
	"context"
	"database/sql"

	"github.com/roamio/tour-booking/internal/model"
)

// PaymentRepo persists payment rows.  A payment row is created pending next
// to its booking and stays pending; the booking's confirmed status is the
// record of a completed capture.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// CreatePendingTx inserts a pending payment for a booking within an
// existing transaction.
func (r *PaymentRepo) CreatePendingTx(ctx context.Context, tx *sql.Tx, bookingID uint64, amount float64) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO payments (booking_id, amount, status) VALUES (?, ?, 'pending')",
		bookingID, amount)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByBookingID fetches the payment row for a booking.
func (r *PaymentRepo) GetByBookingID(ctx context.Context, bookingID uint64) (model.Payment, error) {
	var p model.Payment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, booking_id, amount, status, created_at FROM payments WHERE booking_id=? LIMIT 1",
		bookingID).Scan(&p.ID, &p.BookingID, &p.Amount, &p.Status, &p.CreatedAt)
	return p, err
}
