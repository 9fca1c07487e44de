package models

import "time"

// ScheduleDay identifies one weekday (0=Sunday..6=Saturday) for a complex and
// sport type. It owns the weekly templates and fixed reserves for that day.
type ScheduleDay struct {
	ID          string    `db:"id" json:"id"`
	ComplexID   string    `db:"complex_id" json:"complex_id"`
	SportTypeID string    `db:"sport_type_id" json:"sport_type_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	Schedules     []Schedule     `db:"-" json:"schedules,omitempty"`
	FixedReserves []FixedReserve `db:"-" json:"fixed_reserves,omitempty"`
}

// Schedule is a recurring weekly time template. StartTime/EndTime are
// zero-padded 24h "HH:MM" literals; an end at or before the start means the
// window crosses midnight. A template may target one court or, when CourtID is
// nil, apply complex-wide for its sport.
type Schedule struct {
	ID            string    `db:"id" json:"id"`
	ScheduleDayID string    `db:"schedule_day_id" json:"schedule_day_id"`
	ComplexID     string    `db:"complex_id" json:"complex_id"`
	SportTypeID   string    `db:"sport_type_id" json:"sport_type_id"`
	CourtID       *string   `db:"court_id" json:"court_id,omitempty"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	Rates []Rate `db:"-" json:"rates,omitempty"`
}

// Rate prices one hour of court time under a template or fixed reserve.
type Rate struct {
	ID    string  `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
}
