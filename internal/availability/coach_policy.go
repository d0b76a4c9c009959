package availability

import (
	"context"
	"fmt"
	"time"

	"courtly/internal/catalog"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
)

// CoachAvailabilityPolicy adds coach constraints on top of the reservation
// overlap check. It returns a non-nil Issue when the coach cannot take the
// interval.
type CoachAvailabilityPolicy interface {
	CheckCoach(ctx context.Context, coachID uuid.UUID, day time.Time, w timeslot.Window) (*Issue, error)
}

// ReservationOverlapOnly enforces nothing beyond overlapping reservations.
type ReservationOverlapOnly struct{}

func (ReservationOverlapOnly) CheckCoach(context.Context, uuid.UUID, time.Time, timeslot.Window) (*Issue, error) {
	return nil, nil
}

// CoachLookup resolves a coach by id.
type CoachLookup interface {
	GetCoach(ctx context.Context, id uuid.UUID) (*catalog.Coach, error)
}

// WeeklyHoursPolicy requires the interval to sit inside one of the coach's
// windows for that weekday.
type WeeklyHoursPolicy struct {
	Coaches CoachLookup
}

func (p WeeklyHoursPolicy) CheckCoach(ctx context.Context, coachID uuid.UUID, day time.Time, w timeslot.Window) (*Issue, error) {
	coach, err := p.Coaches.GetCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if coach.Availability.Covers(day.Weekday(), w) {
		return nil, nil
	}
	return &Issue{
		Resource: ResourceCoach,
		Message: fmt.Sprintf("coach %s does not work %s-%s on %s",
			coach.Name, timeslot.Format(w.Start), timeslot.Format(w.End), day.Weekday()),
	}, nil
}
