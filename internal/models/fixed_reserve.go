package models

import "time"

// FixedReserve is a standing weekly reservation: this court, this time, every
// week, until deactivated. The materializer turns it into a concrete Reserve
// for each matching calendar date.
type FixedReserve struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	CourtID       string    `db:"court_id" json:"court_id"`
	ScheduleDayID string    `db:"schedule_day_id" json:"schedule_day_id"`
	RateID        string    `db:"rate_id" json:"rate_id"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	User  *User  `db:"-" json:"user,omitempty"`
	Court *Court `db:"-" json:"court,omitempty"`
	Rate  *Rate  `db:"-" json:"rate,omitempty"`
}
