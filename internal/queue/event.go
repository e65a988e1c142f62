// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a payment capture confirms a
// booking. It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID       uint64  `json:"booking_id"`
	UserID          uint64  `json:"user_id"`
	PackageID       uint64  `json:"package_id"`
	PackageName     string  `json:"package_name"`
	DestinationName string  `json:"destination_name"`
	Country         string  `json:"country"`
	TravelDate      string  `json:"travel_date"`
	NumberOfPeople  uint32  `json:"number_of_people"`
	TotalAmount     float64 `json:"total_amount"`
	ConfirmedAt     string  `json:"confirmed_at"`
}
