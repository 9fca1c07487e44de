// Package availability implements the court-schedule availability engine:
// clock-time interval arithmetic, canonical one-hour slot aggregation,
// expansion of reservations into per-slot occupancy, and the per-slot free
// court computation. Everything in this package is a pure function of its
// inputs; data access stays in the repository layer.
package availability

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// MinuteOfDay converts a zero-padded 24h "HH:MM" literal to minutes since
// midnight. Input must be well formed; a malformed literal is a bug in the
// caller and panics. Handlers validate user-supplied times before they reach
// this package.
func MinuteOfDay(s string) int {
	sep := strings.IndexByte(s, ':')
	if sep < 0 {
		panic(fmt.Sprintf("availability: malformed clock time %q", s))
	}
	hours, err := strconv.Atoi(s[:sep])
	if err != nil {
		panic(fmt.Sprintf("availability: malformed clock time %q", s))
	}
	minutes, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		panic(fmt.Sprintf("availability: malformed clock time %q", s))
	}
	return hours*60 + minutes
}

// ClockLabel renders minutes since midnight back to "HH:MM", wrapping values
// past 24:00 into the next day so 1440 becomes "00:00".
func ClockLabel(min int) string {
	min %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// NormalizeEnd makes a span linear when it crosses midnight: an end at or
// before the start is pushed one day forward. Every comparison of two clock
// times in this package goes through it.
func NormalizeEnd(start, end int) int {
	if end <= start {
		return end + minutesPerDay
	}
	return end
}

// Overlaps reports whether two half-open minute intervals intersect. Both
// ends must already be normalized.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// SlotLabel formats a minute span as the canonical "HH:MM - HH:MM" label.
func SlotLabel(start, end int) string {
	return ClockLabel(start) + " - " + ClockLabel(end)
}

// ParseSpan splits a "HH:MM - HH:MM" label into its raw minute endpoints. The
// end is returned as written; apply NormalizeEnd before comparing.
func ParseSpan(label string) (int, int) {
	start, end, ok := strings.Cut(label, " - ")
	if !ok {
		panic(fmt.Sprintf("availability: malformed span %q", label))
	}
	return MinuteOfDay(start), MinuteOfDay(end)
}

// SplitHours decomposes the span between two clock times into contiguous
// one-hour slot labels. Spans that are not hour aligned are floored to whole
// hours: a 90-minute span yields a single slot and the trailing 30 minutes are
// dropped. Bookings are sold by the hour, so partial trailing intervals never
// occur in practice.
func SplitHours(start, end string) []string {
	s := MinuteOfDay(start)
	return splitHourSpan(s, NormalizeEnd(s, MinuteOfDay(end)))
}

// SplitSpanLabel splits an "HH:MM - HH:MM" span label into its one-hour slots.
func SplitSpanLabel(label string) []string {
	start, end := ParseSpan(label)
	return splitHourSpan(start, NormalizeEnd(start, end))
}

func splitHourSpan(start, end int) []string {
	var out []string
	for t := start; t+60 <= end; t += 60 {
		out = append(out, SlotLabel(t, t+60))
	}
	return out
}

// SpanHours returns the whole-hour duration between two clock times, crossing
// midnight when end <= start.
func SpanHours(start, end string) int {
	s := MinuteOfDay(start)
	return (NormalizeEnd(s, MinuteOfDay(end)) - s) / 60
}

// ValidSpanLabel reports whether label is a well-formed "HH:MM - HH:MM" span.
// It is the boundary check handlers run before handing user input to the rest
// of this package.
func ValidSpanLabel(label string) bool {
	start, end, ok := strings.Cut(label, " - ")
	if !ok {
		return false
	}
	return validClock(start) && validClock(end)
}

func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}
