package storage

import "time"

// Viewing is the parent entity owning line items. Only the attributes the
// cost subsystem consumes are modeled here; the rest of the viewing record
// stays with the CRUD layer.
type Viewing struct {
	ID                  int64     `json:"id"`
	Address             string    `json:"address"`
	Price               *float64  `json:"price"`
	ExpectedMinimalRent *float64  `json:"expected_minimal_rent"`
	Archived            bool      `json:"archived"`
	CreatedAT           time.Time `json:"created_at"`
}
