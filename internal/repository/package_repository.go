package repository

import (
	"context"
	"database/sql"

	"github.com/roamio/tour-booking/internal/model"
)

// PackageRepo provides read access to tour packages and the derived seat
// availability figures the catalog is built on.  Available seats for a
// package are its max_participants minus the people counts of all pending
// and confirmed bookings with a travel date of today or later; the value is
// never persisted.
type PackageRepo struct {
	db *sql.DB
}

func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span repositories.
func (r *PackageRepo) DB() *sql.DB { return r.db }

// PackageView is a catalog row: a package joined with its destination and
// the derived availability.
type PackageView struct {
	ID                     uint64  `json:"id"`
	DestinationID          uint64  `json:"destination_id"`
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	DurationDays           uint32  `json:"duration_days"`
	Price                  float64 `json:"price"`
	MaxParticipants        uint32  `json:"max_participants"`
	ImageURL               string  `json:"image_url,omitempty"`
	DestinationName        string  `json:"destination_name"`
	Country                string  `json:"country"`
	DestinationDescription string  `json:"destination_description,omitempty"`
	DestinationImage       string  `json:"destination_image,omitempty"`
	AvailableSeats         int64   `json:"available_seats"`
}

// Sort keys accepted by ListAvailable.  Anything else falls back to
// SortPriceDesc.  The ORDER BY clause is taken from this whitelist, never
// from user input.
const (
	SortPriceDesc    = "price"
	SortDurationDesc = "duration"
	SortSeatsDesc    = "seats"
	SortPriceAsc     = "price_asc"
)

var orderClauses = map[string]string{
	SortPriceDesc:    "tp.price DESC",
	SortDurationDesc: "tp.duration_days DESC",
	SortSeatsDesc:    "available_seats DESC",
	SortPriceAsc:     "tp.price ASC",
}

const listAvailableBase = `
		SELECT tp.id, tp.destination_id, tp.name, tp.description, tp.duration_days,
			   tp.price, tp.max_participants, tp.image_url,
			   d.name AS destination_name, d.country,
			   d.description AS destination_description, d.image_url AS destination_image,
			   (tp.max_participants - COALESCE(SUM(CASE
					WHEN b.status IN ('pending','confirmed') AND b.travel_date >= CURDATE()
					THEN b.number_of_people ELSE 0 END), 0)) AS available_seats
		FROM tour_packages tp
		LEFT JOIN destinations d ON d.id = tp.destination_id
		LEFT JOIN bookings b ON b.package_id = tp.id
		WHERE tp.status = 'active'
		GROUP BY tp.id, tp.destination_id, tp.name, tp.description, tp.duration_days,
				 tp.price, tp.max_participants, tp.image_url,
				 d.name, d.country, d.description, d.image_url`

// ListAvailable returns the active catalog with availability per package.
// When availableOnly is set, fully booked packages are excluded; rows with
// a NULL aggregate (no bookings at all) are always kept and surface as full
// capacity.  Negative availability from overbooked dates floors at zero.
func (r *PackageRepo) ListAvailable(ctx context.Context, sortKey string, availableOnly bool) ([]PackageView, error) {
	query := listAvailableBase
	if availableOnly {
		query += "\n        HAVING available_seats > 0 OR available_seats IS NULL"
	}
	order, ok := orderClauses[sortKey]
	if !ok {
		order = orderClauses[SortPriceDesc]
	}
	query += "\n        ORDER BY " + order

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PackageView, 0)
	for rows.Next() {
		var (
			v         PackageView
			desc      sql.NullString
			img       sql.NullString
			dName     sql.NullString
			dCountry  sql.NullString
			dDesc     sql.NullString
			dImg      sql.NullString
			available sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.DestinationID, &v.Name, &desc, &v.DurationDays,
			&v.Price, &v.MaxParticipants, &img,
			&dName, &dCountry, &dDesc, &dImg, &available); err != nil {
			return nil, err
		}
		v.Description = desc.String
		v.ImageURL = img.String
		v.DestinationName = dName.String
		v.Country = dCountry.String
		v.DestinationDescription = dDesc.String
		v.DestinationImage = dImg.String
		if available.Valid {
			v.AvailableSeats = available.Int64
		} else {
			v.AvailableSeats = int64(v.MaxParticipants)
		}
		if v.AvailableSeats < 0 {
			v.AvailableSeats = 0
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetByID loads a single package row.  ErrPackageNotFound when absent.
func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (model.TourPackage, error) {
	var (
		p    model.TourPackage
		desc sql.NullString
		img  sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, destination_id, name, description, duration_days, price,
				max_participants, status, image_url
		 FROM tour_packages WHERE id = ?`, id).
		Scan(&p.ID, &p.DestinationID, &p.Name, &desc, &p.DurationDays, &p.Price,
			&p.MaxParticipants, &p.Status, &img)
	if err == sql.ErrNoRows {
		return p, ErrPackageNotFound
	}
	if err != nil {
		return p, err
	}
	p.Description = desc.String
	p.ImageURL = img.String
	return p, nil
}

// PackageDetail is the package page document: package fields joined with
// destination name and country.
type PackageDetail struct {
	ID              uint64  `json:"id"`
	DestinationID   uint64  `json:"destination_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationDays    uint32  `json:"duration_days"`
	Price           float64 `json:"price"`
	MaxParticipants uint32  `json:"max_participants"`
	Status          string  `json:"status"`
	ImageURL        string  `json:"image_url,omitempty"`
	DestinationName string  `json:"destination_name"`
	Country         string  `json:"country"`
}

// GetDetail loads a package joined with its destination.
// ErrPackageNotFound when absent.
func (r *PackageRepo) GetDetail(ctx context.Context, id uint64) (*PackageDetail, error) {
	var (
		d    PackageDetail
		desc sql.NullString
		img  sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT tp.id, tp.destination_id, tp.name, tp.description, tp.duration_days,
				tp.price, tp.max_participants, tp.status, tp.image_url,
				d.name AS destination_name, d.country
		 FROM tour_packages tp
		 JOIN destinations d ON d.id = tp.destination_id
		 WHERE tp.id = ?`, id).
		Scan(&d.ID, &d.DestinationID, &d.Name, &desc, &d.DurationDays,
			&d.Price, &d.MaxParticipants, &d.Status, &img,
			&d.DestinationName, &d.Country)
	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Description = desc.String
	d.ImageURL = img.String
	return &d, nil
}

// ListWithDestination returns every package with its destination name and
// country, regardless of status.  Used by the plain package listing and the
// admin view.
func (r *PackageRepo) ListWithDestination(ctx context.Context) ([]PackageDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tp.id, tp.destination_id, tp.name, tp.description, tp.duration_days,
				tp.price, tp.max_participants, tp.status, tp.image_url,
				d.name AS destination_name, d.country
		 FROM tour_packages tp
		 JOIN destinations d ON d.id = tp.destination_id
		 ORDER BY tp.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PackageDetail, 0)
	for rows.Next() {
		var (
			d    PackageDetail
			desc sql.NullString
			img  sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.DestinationID, &d.Name, &desc, &d.DurationDays,
			&d.Price, &d.MaxParticipants, &d.Status, &img,
			&d.DestinationName, &d.Country); err != nil {
			return nil, err
		}
		d.Description = desc.String
		d.ImageURL = img.String
		out = append(out, d)
	}
	return out, rows.Err()
}
