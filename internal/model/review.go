package model

import "time"

// Review represents a row in the `reviews` table.  At most one review may
// exist per (user, package) pair; the service layer enforces this with an
// explicit pre-check before insert.
type Review struct {
	ID        uint64    // reviews.id
	UserID    uint64    // reviews.user_id
	PackageID uint64    // reviews.package_id
	Rating    int       // reviews.rating (1..5)
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at
}
