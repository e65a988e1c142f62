package model

// Destination represents a row in the `destinations` table.  Destinations
// are seeded by administrators and immutable at runtime.  IsInternational
// is derived once at seeding time from the configured home country.
type Destination struct {
	ID              uint64 // destinations.id
	Name            string // destinations.name
	Country         string // destinations.country
	Description     string // destinations.description
	ImageURL        string // destinations.image_url
	IsInternational bool   // destinations.is_international
}
