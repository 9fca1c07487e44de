package models

import "time"

// Court is a bookable playing field within a complex. Courts may carry their
// own weekly templates restricting when they are bookable; a court with no
// templates is considered open around the clock.
type Court struct {
	ID          string    `db:"id" json:"id"`
	ComplexID   string    `db:"complex_id" json:"complex_id"`
	SportTypeID string    `db:"sport_type_id" json:"sport_type_id"`
	Name        string    `db:"name" json:"name"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	Schedules []Schedule `db:"-" json:"schedules,omitempty"`
}

// CourtFilter narrows court lookups. Active defaults to true when nil.
type CourtFilter struct {
	ComplexID   string
	SportTypeID string
	Active      *bool
}
