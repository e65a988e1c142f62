package model

// TourPackage represents a row in the `tour_packages` table.  Each package
// belongs to exactly one destination.  Price is the per-person price;
// MaxParticipants is the static party-size limit checked at booking time.
type TourPackage struct {
	ID              uint64  // tour_packages.id
	DestinationID   uint64  // tour_packages.destination_id
	Name            string  // tour_packages.name
	Description     string  // tour_packages.description
	DurationDays    uint32  // tour_packages.duration_days
	Price           float64 // tour_packages.price
	MaxParticipants uint32  // tour_packages.max_participants
	Status          string  // tour_packages.status
	ImageURL        string  // tour_packages.image_url
}

// Package statuses.
const (
	PackageActive   = "active"
	PackageInactive = "inactive"
)
