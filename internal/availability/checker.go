// Package availability decides whether a court, coach and equipment set can
// be booked for an interval, and renders a court's daily slot grid.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtly/internal/catalog"
	"courtly/internal/reservations"
	"courtly/internal/shared/apperrors"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Reservations is the read side of the reservation store the checker needs.
type Reservations interface {
	FindActiveByCourt(ctx context.Context, courtID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]reservations.Reservation, error)
	FindActiveByCoach(ctx context.Context, coachID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]reservations.Reservation, error)
	FindActiveByEquipment(ctx context.Context, equipmentID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]reservations.Reservation, error)
}

// EquipmentLookup resolves an equipment item by id.
type EquipmentLookup interface {
	GetEquipment(ctx context.Context, id uuid.UUID) (*catalog.Equipment, error)
}

type Checker struct {
	reservations Reservations
	equipment    EquipmentLookup
	coachPolicy  CoachAvailabilityPolicy
	hours        timeslot.Window
}

// DefaultHours is the operating day used when none is configured.
var DefaultHours = timeslot.Window{Start: 6 * 60, End: 22 * 60}

func NewChecker(res Reservations, equipment EquipmentLookup) *Checker {
	return &Checker{
		reservations: res,
		equipment:    equipment,
		coachPolicy:  ReservationOverlapOnly{},
		hours:        DefaultHours,
	}
}

// SetCoachPolicy replaces the coach policy. nil restores the default.
func (c *Checker) SetCoachPolicy(p CoachAvailabilityPolicy) {
	if p == nil {
		p = ReservationOverlapOnly{}
	}
	c.coachPolicy = p
}

// SetOperatingHours sets the daily grid bounds used by Slots.
func (c *Checker) SetOperatingHours(open, close string) error {
	w, err := timeslot.ParseWindow(open, close)
	if err != nil {
		return fmt.Errorf("invalid operating hours: %w", err)
	}
	c.hours = w
	return nil
}

// OperatingHours returns the grid bounds.
func (c *Checker) OperatingHours() timeslot.Window {
	return c.hours
}

// CheckAll runs the court, coach and equipment checks concurrently and
// joins them. A lookup failure other than a missing equipment item aborts
// the whole check.
func (c *Checker) CheckAll(ctx context.Context, req Request) (Result, error) {
	w, err := timeslot.ParseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.KindValidation, err, "invalid booking interval")
	}
	if req.CourtID == uuid.Nil {
		return Result{}, apperrors.Validation("court_id is required")
	}
	for _, e := range req.Equipment {
		if e.Quantity < 1 {
			return Result{}, apperrors.Validation("equipment quantity must be at least 1")
		}
	}
	day := timeslot.Day(req.Date)

	var courtIssue, coachIssue, equipmentIssue *Issue
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courtIssue, err = c.checkCourt(gctx, req.CourtID, day, w, req.ExcludeID)
		return err
	})
	g.Go(func() error {
		var err error
		coachIssue, err = c.checkCoach(gctx, req.CoachID, day, w, req.ExcludeID)
		return err
	})
	g.Go(func() error {
		var err error
		equipmentIssue, err = c.checkEquipment(gctx, req.Equipment, day, w, req.ExcludeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Available: true, Issues: []Issue{}}
	for _, issue := range []*Issue{courtIssue, coachIssue, equipmentIssue} {
		if issue != nil {
			result.Available = false
			result.Issues = append(result.Issues, *issue)
		}
	}
	return result, nil
}

// firstOverlap returns the first reservation whose interval meets w.
func firstOverlap(existing []reservations.Reservation, w timeslot.Window) *reservations.Reservation {
	for i := range existing {
		other := timeslot.Window{Start: existing[i].StartMinute, End: existing[i].EndMinute}
		if w.Overlaps(other) {
			return &existing[i]
		}
	}
	return nil
}

func conflictIssue(resource Resource, r *reservations.Reservation) *Issue {
	return &Issue{
		Resource: resource,
		Message:  fmt.Sprintf("%s is already booked from %s to %s", resource, r.StartTime, r.EndTime),
		Conflict: &ConflictRef{
			ReservationID: r.ID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
		},
	}
}

func (c *Checker) checkCourt(ctx context.Context, courtID uuid.UUID, day time.Time, w timeslot.Window, excludeID *uuid.UUID) (*Issue, error) {
	existing, err := c.reservations.FindActiveByCourt(ctx, courtID, day, excludeID)
	if err != nil {
		return nil, err
	}
	if r := firstOverlap(existing, w); r != nil {
		return conflictIssue(ResourceCourt, r), nil
	}
	return nil, nil
}

func (c *Checker) checkCoach(ctx context.Context, coachID *uuid.UUID, day time.Time, w timeslot.Window, excludeID *uuid.UUID) (*Issue, error) {
	if coachID == nil {
		return nil, nil
	}
	existing, err := c.reservations.FindActiveByCoach(ctx, *coachID, day, excludeID)
	if err != nil {
		return nil, err
	}
	if r := firstOverlap(existing, w); r != nil {
		return conflictIssue(ResourceCoach, r), nil
	}
	return c.coachPolicy.CheckCoach(ctx, *coachID, day, w)
}

// mergeEquipment folds repeated items into one request, keeping first-seen
// order.
func mergeEquipment(reqs []EquipmentRequest) []EquipmentRequest {
	index := make(map[uuid.UUID]int, len(reqs))
	out := make([]EquipmentRequest, 0, len(reqs))
	for _, r := range reqs {
		if i, ok := index[r.EquipmentID]; ok {
			out[i].Quantity += r.Quantity
			continue
		}
		index[r.EquipmentID] = len(out)
		out = append(out, r)
	}
	return out
}

func (c *Checker) checkEquipment(ctx context.Context, reqs []EquipmentRequest, day time.Time, w timeslot.Window, excludeID *uuid.UUID) (*Issue, error) {
	var items []UnavailableItem
	for _, req := range mergeEquipment(reqs) {
		item, err := c.checkItem(ctx, req, day, w, excludeID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, *item)
		}
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &Issue{
		Resource:         ResourceEquipment,
		Message:          "some equipment is not available",
		UnavailableItems: items,
	}, nil
}

func (c *Checker) checkItem(ctx context.Context, req EquipmentRequest, day time.Time, w timeslot.Window, excludeID *uuid.UUID) (*UnavailableItem, error) {
	item, err := c.equipment.GetEquipment(ctx, req.EquipmentID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return &UnavailableItem{EquipmentID: req.EquipmentID, Reason: ReasonNotFound, Requested: req.Quantity}, nil
	}
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return &UnavailableItem{EquipmentID: item.ID, Name: item.Name, Reason: ReasonInactive, Requested: req.Quantity}, nil
	}

	existing, err := c.reservations.FindActiveByEquipment(ctx, req.EquipmentID, day, excludeID)
	if err != nil {
		return nil, err
	}
	booked := 0
	for _, r := range existing {
		if w.Overlaps(timeslot.Window{Start: r.StartMinute, End: r.EndMinute}) {
			booked += r.Equipment.QuantityOf(req.EquipmentID)
		}
	}

	available := max(item.TotalQuantity-booked, 0)
	if available >= req.Quantity {
		return nil, nil
	}
	return &UnavailableItem{
		EquipmentID: item.ID,
		Name:        item.Name,
		Reason:      ReasonInsufficient,
		Requested:   req.Quantity,
		Available:   available,
	}, nil
}
