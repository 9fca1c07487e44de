package availability

import "github.com/cancha-club/cancha-api/internal/models"

// Occupancy marks one court as taken for one canonical slot, with a
// back-reference to the reservation that produced it. Exactly one of
// ReserveID/FixedReserveID is set depending on the source.
type Occupancy struct {
	TimeSlot       string `json:"time_slot"`
	CourtID        string `json:"court_id"`
	ReserveID      string `json:"reserve_id,omitempty"`
	FixedReserveID string `json:"fixed_reserve_id,omitempty"`
}

// SlotReservation is the display-mode expansion payload: who holds a court
// during one canonical slot.
type SlotReservation struct {
	TimeSlot       string               `json:"time_slot"`
	CourtID        string               `json:"court_id"`
	ReserveID      string               `json:"reserve_id,omitempty"`
	FixedReserveID string               `json:"fixed_reserve_id,omitempty"`
	ClientName     string               `json:"client_name"`
	Status         models.ReserveStatus `json:"status"`
	Type           models.ReserveType   `json:"type"`
	Price          float64              `json:"price"`
}

// SlotDetail groups the reservations occupying one canonical slot.
type SlotDetail struct {
	Schedule     string            `json:"schedule"`
	Reservations []SlotReservation `json:"reservations"`
}

// MaterializedSet returns the IDs of fixed reserves that already have a
// concrete reserve referencing them in the given list. Fixed reserves in this
// set are suppressed during expansion so a materialized instance and its
// template never count twice. This is the single source of truth for the
// suppression rule.
func MaterializedSet(reserves []models.Reserve) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range reserves {
		if r.FixedReserveID != nil {
			set[*r.FixedReserveID] = struct{}{}
		}
	}
	return set
}

// ExpandOccupancy flattens concrete and fixed reservations into one occupancy
// record per court per one-hour slot. Concrete reserves come first; active,
// non-materialized fixed reserves follow. Overlapping bookings yield multiple
// records for the same slot, which downstream consumers treat as a conflict
// signal rather than merging silently. Inputs are never mutated.
func ExpandOccupancy(reserves []models.Reserve, fixed []models.FixedReserve) []Occupancy {
	materialized := MaterializedSet(reserves)
	var out []Occupancy

	for _, r := range reserves {
		for _, label := range SplitSpanLabel(r.Schedule) {
			out = append(out, Occupancy{TimeSlot: label, CourtID: r.CourtID, ReserveID: r.ID})
		}
	}

	for _, f := range fixed {
		if !f.Active {
			continue
		}
		if _, ok := materialized[f.ID]; ok {
			continue
		}
		for _, label := range SplitHours(f.StartTime, f.EndTime) {
			out = append(out, Occupancy{TimeSlot: label, CourtID: f.CourtID, FixedReserveID: f.ID})
		}
	}

	return out
}

// ExpandDetails is the display-mode twin of ExpandOccupancy: same traversal
// and suppression, but each record carries the client-facing detail fields.
func ExpandDetails(reserves []models.Reserve, fixed []models.FixedReserve) []SlotReservation {
	materialized := MaterializedSet(reserves)
	var out []SlotReservation

	for _, r := range reserves {
		for _, label := range SplitSpanLabel(r.Schedule) {
			out = append(out, SlotReservation{
				TimeSlot:   label,
				CourtID:    r.CourtID,
				ReserveID:  r.ID,
				ClientName: r.ClientName,
				Status:     r.Status,
				Type:       r.Type,
				Price:      r.Price,
			})
		}
	}

	for _, f := range fixed {
		if !f.Active {
			continue
		}
		if _, ok := materialized[f.ID]; ok {
			continue
		}
		detail := SlotReservation{
			CourtID:        f.CourtID,
			FixedReserveID: f.ID,
			Status:         models.ReserveApproved,
			Type:           models.ReserveFixed,
		}
		if f.User != nil {
			detail.ClientName = f.User.FullName
		}
		if f.Rate != nil {
			detail.Price = f.Rate.Price * float64(SpanHours(f.StartTime, f.EndTime))
		}
		for _, label := range SplitHours(f.StartTime, f.EndTime) {
			d := detail
			d.TimeSlot = label
			out = append(out, d)
		}
	}

	return out
}

// GroupDetails arranges expanded reservation details under the canonical slot
// list. Every slot appears in the result, with an empty reservation list when
// nothing occupies it.
func GroupDetails(slots []Slot, details []SlotReservation) []SlotDetail {
	bySlot := make(map[string][]SlotReservation)
	for _, d := range details {
		bySlot[d.TimeSlot] = append(bySlot[d.TimeSlot], d)
	}

	out := make([]SlotDetail, 0, len(slots))
	for _, slot := range slots {
		reservations := bySlot[slot.TimeSlot]
		if reservations == nil {
			reservations = []SlotReservation{}
		}
		out = append(out, SlotDetail{Schedule: slot.TimeSlot, Reservations: reservations})
	}
	return out
}
