package availability

import (
	"sort"

	"github.com/cancha-club/cancha-api/internal/models"
)

// Slot is a canonical one-hour interval together with the courts and rates
// bookable during it.
type Slot struct {
	TimeSlot string        `json:"time_slot"`
	Courts   []SlotCourt   `json:"courts,omitempty"`
	Rates    []models.Rate `json:"rates,omitempty"`
}

// SlotCourt is one court valid for a slot, with the rates its template
// attached.
type SlotCourt struct {
	CourtID string        `json:"court_id"`
	Rates   []models.Rate `json:"rates,omitempty"`
}

// BuildSlots merges weekly templates into the sorted canonical slot list.
// Each template span is decomposed into one-hour slots; slots accumulate the
// distinct courts referenced by court-specific templates, while templates with
// no court contribute a complex-wide fallback rate list. Ordering follows the
// venue's operating day: slots starting 06:00 or later come first in clock
// order, and the post-midnight tail (00:00-05:59) sorts after all of them.
func BuildSlots(templates []models.Schedule) []Slot {
	index := make(map[string]*Slot)

	for _, tpl := range templates {
		for _, label := range SplitHours(tpl.StartTime, tpl.EndTime) {
			slot, ok := index[label]
			if !ok {
				slot = &Slot{TimeSlot: label}
				index[label] = slot
			}
			if tpl.CourtID != nil {
				if !slotHasCourt(slot, *tpl.CourtID) {
					slot.Courts = append(slot.Courts, SlotCourt{CourtID: *tpl.CourtID, Rates: tpl.Rates})
				}
			} else if len(slot.Rates) == 0 {
				slot.Rates = tpl.Rates
			}
		}
	}

	out := make([]Slot, 0, len(index))
	for _, slot := range index {
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool {
		return slotSortKey(out[i].TimeSlot) < slotSortKey(out[j].TimeSlot)
	})
	return out
}

func slotHasCourt(slot *Slot, courtID string) bool {
	for _, c := range slot.Courts {
		if c.CourtID == courtID {
			return true
		}
	}
	return false
}

// slotSortKey orders slots by the venue day. Hours before 06:00 are
// temporally late (they follow a midnight crossing) and shift one day forward.
func slotSortKey(label string) int {
	start, _ := ParseSpan(label)
	if start < 6*60 {
		return start + minutesPerDay
	}
	return start
}
