package model

import "time"

// Payment represents a row in the `payments` table.  One payment row is
// created per booking at booking time with the booking's total amount.
// Rows stay pending; a completed capture is represented by the booking's
// confirmed status.
type Payment struct {
	ID        uint64    // payments.id
	BookingID uint64    // payments.booking_id
	Amount    float64   // payments.amount
	Status    string    // payments.status
	CreatedAt time.Time // payments.created_at
}

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)
