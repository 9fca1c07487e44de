package availability

import "github.com/cancha-club/cancha-api/internal/models"

// SlotAvailability lists the courts free during one canonical slot. The court
// list may be empty; callers distinguish "fully booked" from "nothing
// configured" by whether any slots were returned at all.
type SlotAvailability struct {
	Schedule string         `json:"schedule"`
	Courts   []models.Court `json:"courts"`
}

// Compute resolves, for every canonical slot, which of the given courts are
// free. A court is free when no occupancy record overlaps the slot and the
// slot fits inside the court's own operating hours (courts without templates
// are open around the clock). An empty court input yields empty availability
// for every slot, never an error.
func Compute(slots []Slot, occupancy []Occupancy, courts []models.Court) []SlotAvailability {
	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		start, end := ParseSpan(slot.TimeSlot)
		end = NormalizeEnd(start, end)

		reserved := reservedCourts(occupancy, start, end)
		free := make([]models.Court, 0, len(courts))
		for _, court := range courts {
			if _, taken := reserved[court.ID]; taken {
				continue
			}
			if !courtOpen(court, start, end) {
				continue
			}
			free = append(free, court)
		}
		out = append(out, SlotAvailability{Schedule: slot.TimeSlot, Courts: free})
	}
	return out
}

// ComputeSlot resolves availability for one requested schedule without
// materializing the full canonical slot list. A court counts as reserved when
// any one-hour expansion of its bookings equals the requested slot label;
// fixed reserves follow the same active/materialized suppression as the full
// expansion.
func ComputeSlot(schedule string, reserves []models.Reserve, fixed []models.FixedReserve, courts []models.Court) []models.Court {
	materialized := MaterializedSet(reserves)
	reserved := make(map[string]struct{})

	for _, r := range reserves {
		for _, label := range SplitSpanLabel(r.Schedule) {
			if label == schedule {
				reserved[r.CourtID] = struct{}{}
			}
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
			if label == schedule {
				reserved[f.CourtID] = struct{}{}
			}
		}
	}

	start, end := ParseSpan(schedule)
	end = NormalizeEnd(start, end)

	free := make([]models.Court, 0, len(courts))
	for _, court := range courts {
		if _, taken := reserved[court.ID]; taken {
			continue
		}
		if !courtOpen(court, start, end) {
			continue
		}
		free = append(free, court)
	}
	return free
}

func reservedCourts(occupancy []Occupancy, start, end int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, o := range occupancy {
		os, oe := ParseSpan(o.TimeSlot)
		oe = NormalizeEnd(os, oe)
		if Overlaps(start, end, os, oe) {
			set[o.CourtID] = struct{}{}
		}
	}
	return set
}

// courtOpen reports whether [start,end) fits inside one of the court's
// operating-hour templates. Post-midnight slot labels restart at 00:00, so a
// second comparison shifts the slot one day forward to match templates that
// cross midnight.
func courtOpen(court models.Court, start, end int) bool {
	if len(court.Schedules) == 0 {
		return true
	}
	for _, tpl := range court.Schedules {
		ts := MinuteOfDay(tpl.StartTime)
		te := NormalizeEnd(ts, MinuteOfDay(tpl.EndTime))
		if ts <= start && end <= te {
			return true
		}
		if ts <= start+minutesPerDay && end+minutesPerDay <= te {
			return true
		}
	}
	return false
}
