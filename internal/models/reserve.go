package models

import "time"

// ReserveStatus is the lifecycle state of a concrete reservation.
type ReserveStatus string

const (
	ReservePending   ReserveStatus = "PENDIENTE"
	ReserveApproved  ReserveStatus = "APROBADO"
	ReserveRejected  ReserveStatus = "RECHAZADO"
	ReserveCancelled ReserveStatus = "CANCELADO"
	ReserveCompleted ReserveStatus = "COMPLETADO"
)

// ValidReserveStatus reports whether s is one of the known statuses.
func ValidReserveStatus(s ReserveStatus) bool {
	switch s {
	case ReservePending, ReserveApproved, ReserveRejected, ReserveCancelled, ReserveCompleted:
		return true
	}
	return false
}

// ReserveType records how a reservation originated.
type ReserveType string

const (
	ReserveManual     ReserveType = "MANUAL"
	ReserveFixed      ReserveType = "FIJO"
	ReserveOnline     ReserveType = "ONLINE"
	ReserveTournament ReserveType = "TORNEO"
	ReserveSchool     ReserveType = "ESCUELA"
	ReserveEvent      ReserveType = "EVENTO"
	ReserveOther      ReserveType = "OTRO"
)

// ValidReserveType reports whether t is one of the known origin types.
func ValidReserveType(t ReserveType) bool {
	switch t {
	case ReserveManual, ReserveFixed, ReserveOnline, ReserveTournament, ReserveSchool, ReserveEvent, ReserveOther:
		return true
	}
	return false
}

// Reserve is a single-date, single-court reservation. Date carries the
// calendar day only, normalized to UTC midnight. Schedule is the literal
// "HH:MM - HH:MM" span; an end at or before the start crosses midnight.
// FixedReserveID back-references the fixed reserve that generated it, when any.
type Reserve struct {
	ID                string        `db:"id" json:"id"`
	ComplexID         string        `db:"complex_id" json:"complex_id"`
	CourtID           string        `db:"court_id" json:"court_id"`
	Date              time.Time     `db:"date" json:"date"`
	Schedule          string        `db:"schedule" json:"schedule"`
	UserID            *string       `db:"user_id" json:"user_id,omitempty"`
	ClientName        string        `db:"client_name" json:"client_name"`
	ClientPhone       string        `db:"client_phone" json:"client_phone"`
	Price             float64       `db:"price" json:"price"`
	ReservationAmount float64       `db:"reservation_amount" json:"reservation_amount"`
	Status            ReserveStatus `db:"status" json:"status"`
	Type              ReserveType   `db:"type" json:"type"`
	FixedReserveID    *string       `db:"fixed_reserve_id" json:"fixed_reserve_id,omitempty"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

// ReserveFilter describes query params for listing reserves.
type ReserveFilter struct {
	ComplexID      string
	CourtID        string
	Date           *time.Time
	From           *time.Time
	To             *time.Time
	Status         ReserveStatus
	Type           ReserveType
	FixedReserveID string
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// DateOnly strips the time-of-day component, keeping the calendar day at UTC
// midnight. All reserve date keys go through this before storage or lookup.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
