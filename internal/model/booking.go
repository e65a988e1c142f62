package model

import "time"

// Booking represents a row in the `bookings` table.  TotalAmount is fixed
// at creation (price x number of people) and never recomputed.  PaymentDate
// and CardLastFour stay nil until the payment workflow confirms the
// booking; only the last four card digits are ever stored.
type Booking struct {
	ID             uint64     // bookings.id
	UserID         uint64     // bookings.user_id
	PackageID      uint64     // bookings.package_id
	TravelDate     time.Time  // bookings.travel_date
	NumberOfPeople uint32     // bookings.number_of_people
	TotalAmount    float64    // bookings.total_amount
	Status         string     // bookings.status
	BookingDate    time.Time  // bookings.booking_date
	PaymentDate    *time.Time // bookings.payment_date (nullable)
	CardLastFour   *string    // bookings.card_last_four (nullable)
}

// Booking statuses.  Cancelled exists in the schema but no operation
// transitions a booking into it.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)
