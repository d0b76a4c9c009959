package availability

import (
	"context"
	"iter"
	"time"

	"courtly/internal/shared/apperrors"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
)

// Grid yields contiguous slots of duration minutes across hours, each marked
// unavailable if it meets a booked window. A trailing slot that would run
// past closing is not emitted. The sequence can be ranged over repeatedly.
func Grid(hours timeslot.Window, duration int, booked []timeslot.Window) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if duration <= 0 {
			return
		}
		for start := hours.Start; start+duration <= hours.End; start += duration {
			w := timeslot.Window{Start: start, End: start + duration}
			free := true
			for _, b := range booked {
				if w.Overlaps(b) {
					free = false
					break
				}
			}
			if !yield(Slot{StartTime: timeslot.Format(w.Start), EndTime: timeslot.Format(w.End), Available: free}) {
				return
			}
		}
	}
}

// Slots loads the court's active reservations for day and returns its grid.
func (c *Checker) Slots(ctx context.Context, courtID uuid.UUID, day time.Time, duration int) (iter.Seq[Slot], error) {
	if duration <= 0 {
		return nil, apperrors.Validation("slot duration must be positive, got %d", duration)
	}
	existing, err := c.reservations.FindActiveByCourt(ctx, courtID, timeslot.Day(day), nil)
	if err != nil {
		return nil, err
	}
	booked := make([]timeslot.Window, 0, len(existing))
	for _, r := range existing {
		booked = append(booked, timeslot.Window{Start: r.StartMinute, End: r.EndMinute})
	}
	return Grid(c.hours, duration, booked), nil
}
