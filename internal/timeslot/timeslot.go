// Package timeslot converts "HH:MM" wall-clock strings to minute offsets and
// answers half-open interval questions. Every availability check in the
// service is built on Overlaps.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-day layout used on the wire and in cache keys.
const DateLayout = "2006-01-02"

// MinutesPerDay bounds a valid minute offset (24:00 is allowed as an end).
const MinutesPerDay = 24 * 60

// ErrInvalidTimeFormat is returned for anything that is not "HH:MM".
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// ToMinutes parses "HH:MM" into minutes since midnight.
func ToMinutes(value string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	total := hours*60 + minutes
	if total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	return total, nil
}

// digits reports whether s is made of ASCII digits only. strconv.Atoi alone
// would let a sign through.
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Format renders a minute offset back to "HH:MM".
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OverlapsMinutes reports whether [startA, endA) and [startB, endB) intersect.
// Touching endpoints do not overlap.
func OverlapsMinutes(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// Overlaps is OverlapsMinutes over "HH:MM" strings.
func Overlaps(startA, endA, startB, endB string) (bool, error) {
	sa, err := ToMinutes(startA)
	if err != nil {
		return false, err
	}
	ea, err := ToMinutes(endA)
	if err != nil {
		return false, err
	}
	sb, err := ToMinutes(startB)
	if err != nil {
		return false, err
	}
	eb, err := ToMinutes(endB)
	if err != nil {
		return false, err
	}
	return OverlapsMinutes(sa, ea, sb, eb), nil
}

// DurationHours returns (end - start) in hours. The result is negative or zero
// when end does not come after start; callers that care must validate first.
func DurationHours(start, end string) (float64, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return 0, err
	}
	return float64(e-s) / 60, nil
}

// HourOf returns the integer hour-of-day of an "HH:MM" value.
func HourOf(value string) (int, error) {
	m, err := ToMinutes(value)
	if err != nil {
		return 0, err
	}
	return m / 60, nil
}

// Window is a validated half-open [Start, End) interval in minutes.
type Window struct {
	Start int
	End   int
}

// ParseWindow parses and validates that end comes strictly after start.
func ParseWindow(start, end string) (Window, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return Window{}, err
	}
	if e <= s {
		return Window{}, fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

// Overlaps reports whether two windows intersect.
func (w Window) Overlaps(other Window) bool {
	return OverlapsMinutes(w.Start, w.End, other.Start, other.End)
}

// Contains reports whether other lies fully inside w.
func (w Window) Contains(other Window) bool {
	return w.Start <= other.Start && other.End <= w.End
}

// Day strips the time-of-day, keeping the calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" calendar day.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// SameDay compares calendar days, ignoring time-of-day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
