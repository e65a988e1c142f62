package repository

import (
	"context"
	"database/sql"
)

// DestinationRepo provides read access to destinations together with the
// aggregates the destination listing shows: how many active packages a
// destination has, the cheapest active price and the remaining seats across
// its active packages.
type DestinationRepo struct {
	db *sql.DB
}

func NewDestinationRepo(db *sql.DB) *DestinationRepo { return &DestinationRepo{db: db} }

// DestinationView is a destination listing row.
type DestinationView struct {
	ID              uint64  `json:"id"`
	Name            string  `json:"name"`
	Country         string  `json:"country"`
	Description     string  `json:"description,omitempty"`
	ImageURL        string  `json:"image_url,omitempty"`
	IsInternational bool    `json:"is_international"`
	PackageCount    int64   `json:"package_count"`
	MinPrice        float64 `json:"min_price"`
	AvailableSeats  int64   `json:"available_seats"`
}

// ListWithAvailability returns destinations that have at least one active
// package and at least one remaining seat.  Seat totals count confirmed
// future bookings only; pending bookings do not reduce the destination
// aggregate (they do reduce the per-package figure in PackageRepo).
func (r *DestinationRepo) ListWithAvailability(ctx context.Context) ([]DestinationView, error) {
	const q = `
		SELECT d.id, d.name, d.country, d.description, d.image_url, d.is_international,
			   COUNT(DISTINCT CASE WHEN tp.status = 'active' THEN tp.id END) AS package_count,
			   MIN(CASE WHEN tp.status = 'active' THEN tp.price END) AS min_price,
			   SUM(CASE WHEN tp.status = 'active'
				   THEN (tp.max_participants - COALESCE(
						(SELECT SUM(b.number_of_people) FROM bookings b
						 WHERE b.package_id = tp.id
						   AND b.status = 'confirmed'
						   AND b.travel_date >= CURDATE()), 0))
				   ELSE 0 END) AS total_available_seats
		FROM destinations d
		LEFT JOIN tour_packages tp ON tp.destination_id = d.id
		GROUP BY d.id, d.name, d.country, d.description, d.image_url, d.is_international
		HAVING package_count > 0 AND total_available_seats > 0`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DestinationView, 0)
	for rows.Next() {
		var (
			v        DestinationView
			desc     sql.NullString
			img      sql.NullString
			minPrice sql.NullFloat64
			seats    sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.Country, &desc, &img, &v.IsInternational,
			&v.PackageCount, &minPrice, &seats); err != nil {
			return nil, err
		}
		v.Description = desc.String
		v.ImageURL = img.String
		v.MinPrice = minPrice.Float64
		v.AvailableSeats = seats.Int64
		out = append(out, v)
	}
	return out, rows.Err()
}
