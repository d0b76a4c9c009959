package bookings

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"time"

	"courtly/internal/availability"
	"courtly/internal/catalog"
	"courtly/internal/notifications"
	"courtly/internal/pricing"
	"courtly/internal/reservations"
	"courtly/internal/shared/apperrors"
	"courtly/internal/shared/constants"
	"courtly/internal/timeslot"
	"courtly/pkg/cache"
	"courtly/pkg/logger"

	"github.com/google/uuid"
)

// Service interface defines the contract for booking business logic
type Service interface {
	SetCacheService(cacheService cache.Service)
	SetWaitlistNotifier(notifier WaitlistNotifier)

	CheckAvailability(ctx context.Context, req BookingRequest) (availability.Result, error)
	PreviewPrice(ctx context.Context, req BookingRequest) (pricing.Breakdown, error)
	ListAvailableSlots(ctx context.Context, courtID uuid.UUID, day time.Time, durationMinutes int) ([]availability.Slot, error)

	CreateBooking(ctx context.Context, actor Actor, req BookingRequest) (*reservations.Reservation, error)
	CancelBooking(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error)
	CompleteBooking(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error)
	PromoteWaitlisted(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error)

	GetBooking(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error)
	ListMyBookings(ctx context.Context, actor Actor, filter reservations.ListFilter) ([]reservations.Reservation, int64, error)
	ListBookings(ctx context.Context, actor Actor, filter reservations.ListFilter) ([]reservations.Reservation, int64, error)
}

// service implements the Service interface
type service struct {
	store        reservations.Store
	catalog      Catalog
	checker      *availability.Checker
	engine       *pricing.Engine
	publisher    notifications.Publisher
	notifier     WaitlistNotifier
	cacheService cache.Service
	config       *ServiceConfig
	log          *logger.Logger
	now          func() time.Time
}

// NewService creates a new booking service instance
func NewService(store reservations.Store, cat Catalog, checker *availability.Checker, publisher notifications.Publisher, config *ServiceConfig) Service {
	if config == nil {
		config = DefaultServiceConfig()
	}
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &service{
		store:     store,
		catalog:   cat,
		checker:   checker,
		engine:    pricing.NewEngine(cat),
		publisher: publisher,
		config:    config,
		log:       logger.GetDefault(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetCacheService sets the cache used for slot grids
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SetWaitlistNotifier sets who is told when a cancellation frees capacity
func (s *service) SetWaitlistNotifier(notifier WaitlistNotifier) {
	s.notifier = notifier
}

// resolved holds the catalog entities a request refers to.
type resolved struct {
	court     *catalog.Court
	coach     *catalog.Coach
	equipment []pricing.EquipmentSelection
}

func validateRequest(req BookingRequest) error {
	if req.CourtID == uuid.Nil {
		return apperrors.Validation("court_id is required")
	}
	if req.Date.IsZero() {
		return apperrors.Validation("date is required")
	}
	if _, err := timeslot.ParseWindow(req.StartTime, req.EndTime); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, err, "invalid booking interval")
	}
	for _, e := range req.Equipment {
		if e.EquipmentID == uuid.Nil || e.Quantity < 1 {
			return apperrors.Validation("each equipment line needs an id and a quantity of at least 1")
		}
	}
	return nil
}

// resolveCourtAndCoach loads the court and coach and requires both active.
func (s *service) resolveCourtAndCoach(ctx context.Context, req BookingRequest) (*resolved, error) {
	court, err := s.catalog.GetCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !court.IsActive {
		return nil, apperrors.Inactive("court", court.ID.String())
	}

	out := &resolved{court: court}
	if req.CoachID != nil {
		coach, err := s.catalog.GetCoach(ctx, *req.CoachID)
		if err != nil {
			return nil, err
		}
		if !coach.IsActive {
			return nil, apperrors.Inactive("coach", coach.ID.String())
		}
		out.coach = coach
	}
	return out, nil
}

// resolveEquipment loads every requested item. Missing or inactive items
// fail the whole call.
func (s *service) resolveEquipment(ctx context.Context, r *resolved, reqs []availability.EquipmentRequest) error {
	r.equipment = make([]pricing.EquipmentSelection, 0, len(reqs))
	for _, e := range reqs {
		item, err := s.catalog.GetEquipment(ctx, e.EquipmentID)
		if err != nil {
			return err
		}
		if !item.IsActive {
			return apperrors.Inactive("equipment", item.ID.String())
		}
		r.equipment = append(r.equipment, pricing.EquipmentSelection{Item: *item, Quantity: e.Quantity})
	}
	return nil
}

func (s *service) price(ctx context.Context, r *resolved, req BookingRequest) (pricing.Breakdown, error) {
	return s.engine.Calculate(ctx, pricing.Request{
		Court:     *r.court,
		Date:      timeslot.Day(req.Date),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Equipment: r.equipment,
		Coach:     r.coach,
	})
}

// CheckAvailability reports conflicts for every requested resource
func (s *service) CheckAvailability(ctx context.Context, req BookingRequest) (availability.Result, error) {
	if err := validateRequest(req); err != nil {
		return availability.Result{}, err
	}
	if _, err := s.resolveCourtAndCoach(ctx, req); err != nil {
		return availability.Result{}, err
	}
	return s.checker.CheckAll(ctx, req.availabilityRequest(nil))
}

// PreviewPrice prices a request without checking availability or persisting
func (s *service) PreviewPrice(ctx context.Context, req BookingRequest) (pricing.Breakdown, error) {
	if err := validateRequest(req); err != nil {
		return pricing.Breakdown{}, err
	}
	r, err := s.resolveCourtAndCoach(ctx, req)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	if err := s.resolveEquipment(ctx, r, req.Equipment); err != nil {
		return pricing.Breakdown{}, err
	}
	return s.price(ctx, r, req)
}

// ListAvailableSlots returns the court's daily grid, cached per court, day
// and duration
func (s *service) ListAvailableSlots(ctx context.Context, courtID uuid.UUID, day time.Time, durationMinutes int) ([]availability.Slot, error) {
	if durationMinutes == 0 {
		durationMinutes = s.config.DefaultSlotMinutes
	}
	if durationMinutes < 0 {
		return nil, apperrors.Validation("duration must be positive, got %d", durationMinutes)
	}
	day = timeslot.Day(day)
	if _, err := s.catalog.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}

	cacheKey := constants.BuildSlotsKey(courtID.String(), day.Format(timeslot.DateLayout), durationMinutes)
	if s.cacheService != nil {
		var cached []availability.Slot
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	seq, err := s.checker.Slots(ctx, courtID, day, durationMinutes)
	if err != nil {
		return nil, err
	}
	slots := collect(seq)

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, slots, s.config.SlotsCacheTTL); err != nil {
			s.log.Warn("Failed to cache slot grid", slog.String("key", cacheKey), slog.Any("error", err))
		}
	}
	return slots, nil
}

func collect(seq iter.Seq[availability.Slot]) []availability.Slot {
	slots := slices.Collect(seq)
	if slots == nil {
		slots = []availability.Slot{}
	}
	return slots
}

// invalidateSlots drops every cached grid of the court and day
func (s *service) invalidateSlots(ctx context.Context, courtID uuid.UUID, day time.Time) {
	if s.cacheService == nil {
		return
	}
	pattern := constants.BuildSlotsPattern(courtID.String(), day.Format(timeslot.DateLayout))
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		s.log.Warn("Failed to invalidate slot cache", slog.String("pattern", pattern), slog.Any("error", err))
	}
}

func (s *service) invalidateWaitlist(ctx context.Context, courtID uuid.UUID, day time.Time) {
	if s.cacheService == nil {
		return
	}
	pattern := constants.BuildWaitlistQueuePattern(courtID.String(), day.Format(timeslot.DateLayout))
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		s.log.Warn("Failed to invalidate waitlist cache", slog.String("pattern", pattern), slog.Any("error", err))
	}
}

// publish sends an event. A broker failure never fails the operation that
// already committed.
func (s *service) publish(ctx context.Context, t notifications.EventType, r *reservations.Reservation) {
	if err := s.publisher.Publish(ctx, notifications.NewReservationEvent(t, r)); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
			"type":           string(t),
			"reservation_id": r.ID.String(),
		})
	}
}

// CreateBooking checks availability, prices and persists a confirmed
// reservation in one lock scope. On any conflict nothing is written.
func (s *service) CreateBooking(ctx context.Context, actor Actor, req BookingRequest) (*reservations.Reservation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	r, err := s.resolveCourtAndCoach(ctx, req)
	if err != nil {
		return nil, err
	}

	w, _ := timeslot.ParseWindow(req.StartTime, req.EndTime)
	res := &reservations.Reservation{
		UserID:    actor.UserID,
		CourtID:   req.CourtID,
		CoachID:   req.CoachID,
		Equipment: equipmentLines(req.Equipment),
		Status:    reservations.StatusConfirmed,
		Notes:     req.Notes,
	}
	res.SetInterval(req.Date, w)

	err = s.store.WithLocks(ctx, res.ResourceKeys(), func(ctx context.Context, tx reservations.Writer) error {
		result, err := s.checker.CheckAll(ctx, req.availabilityRequest(nil))
		if err != nil {
			return err
		}
		if !result.Available {
			return apperrors.Conflict(result.Issues)
		}
		if err := s.resolveEquipment(ctx, r, req.Equipment); err != nil {
			return err
		}
		breakdown, err := s.price(ctx, r, req)
		if err != nil {
			return err
		}
		res.Pricing = breakdown
		return tx.Insert(ctx, res)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAvailabilityConflict) {
			s.log.LogBookingRejected(ctx, req.CourtID.String(), actor.UserID.String(), issueCount(err))
		}
		return nil, err
	}

	s.log.LogBookingCreated(ctx, res.ID.String(), res.CourtID.String(), res.UserID.String(), res.Pricing.Total)
	s.invalidateSlots(ctx, res.CourtID, res.Date)
	s.publish(ctx, notifications.EventBookingConfirmed, res)
	return res, nil
}

func issueCount(err error) int {
	if issues, ok := apperrors.IssuesOf(err).([]availability.Issue); ok {
		return len(issues)
	}
	return 1
}

func equipmentLines(reqs []availability.EquipmentRequest) reservations.EquipmentLines {
	lines := make(reservations.EquipmentLines, 0, len(reqs))
	for _, e := range reqs {
		lines = append(lines, reservations.EquipmentLine{EquipmentID: e.EquipmentID, Quantity: e.Quantity})
	}
	return lines
}

// loadFor fetches a reservation the actor is allowed to see.
func (s *service) loadFor(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !res.OwnedBy(actor.UserID) {
		return nil, apperrors.Forbidden("reservation %s belongs to another user", id)
	}
	return res, nil
}

// transition applies a conditional status change to res. A lost race is
// reported against the status that won.
func (s *service) transition(ctx context.Context, res *reservations.Reservation, to reservations.Status, by *uuid.UUID) error {
	from := res.Status
	if from == reservations.StatusCancelled && to == reservations.StatusCancelled {
		return apperrors.AlreadyCancelled(res.ID.String())
	}
	if !from.CanTransition(to) {
		return apperrors.InvalidTransition(res.ID.String(), string(from), string(to))
	}

	at := s.now()
	err := s.store.UpdateStatus(ctx, res.ID, reservations.Transition{From: from, To: to, At: at, By: by})
	if errors.Is(err, reservations.ErrStatusChanged) {
		current, getErr := s.store.GetByID(ctx, res.ID)
		if getErr != nil {
			return getErr
		}
		if current.Status == reservations.StatusCancelled && to == reservations.StatusCancelled {
			return apperrors.AlreadyCancelled(res.ID.String())
		}
		return apperrors.InvalidTransition(res.ID.String(), string(current.Status), string(to))
	}
	if err != nil {
		return err
	}

	res.Status = to
	res.UpdatedAt = at
	switch to {
	case reservations.StatusCancelled:
		res.CancelledAt = &at
		res.CancelledBy = by
	case reservations.StatusCompleted:
		res.CompletedAt = &at
	}
	s.log.LogBookingTransition(ctx, res.ID.String(), string(from), string(to))
	return nil
}

// CancelBooking cancels a reservation owned by the actor, or any reservation
// for an admin. When capacity is freed the next waitlist entry for the court
// and day is notified.
func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error) {
	res, err := s.loadFor(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	freed := res.Status.ConsumesCapacity()

	actorID := actor.UserID
	if err := s.transition(ctx, res, reservations.StatusCancelled, &actorID); err != nil {
		return nil, err
	}
	s.log.LogBookingCancelled(ctx, res.ID.String(), res.CourtID.String(), actorID.String())
	s.publish(ctx, notifications.EventBookingCancelled, res)

	if freed {
		s.invalidateSlots(ctx, res.CourtID, res.Date)
		s.notifyWaitlist(ctx, res)
	} else {
		s.invalidateWaitlist(ctx, res.CourtID, res.Date)
	}
	return res, nil
}

func (s *service) notifyWaitlist(ctx context.Context, cancelled *reservations.Reservation) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.NotifyNext(ctx, cancelled.CourtID, cancelled.Date); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to notify waitlist", err, map[string]interface{}{
			"reservation_id": cancelled.ID.String(),
			"court_id":       cancelled.CourtID.String(),
		})
	}
}

// CompleteBooking marks a confirmed reservation as played. Admin only.
func (s *service) CompleteBooking(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error) {
	if !actor.IsAdmin {
		return nil, apperrors.Forbidden("only administrators can complete bookings")
	}
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, res, reservations.StatusCompleted, nil); err != nil {
		return nil, err
	}
	s.publish(ctx, notifications.EventBookingCompleted, res)
	return res, nil
}

// PromoteWaitlisted turns a waitlist entry into a confirmed reservation. It
// re-checks availability and re-prices inside the lock scope; on conflict
// the entry stays on the waitlist. Admin only.
func (s *service) PromoteWaitlisted(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error) {
	if !actor.IsAdmin {
		return nil, apperrors.Forbidden("only administrators can promote waitlist entries")
	}
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != reservations.StatusWaitlist {
		return nil, apperrors.InvalidTransition(res.ID.String(), string(res.Status), string(reservations.StatusConfirmed))
	}

	req := requestFor(res)
	r, err := s.resolveCourtAndCoach(ctx, req)
	if err != nil {
		return nil, err
	}

	keys := append(res.ResourceKeys(), reservations.WaitlistKey(res.CourtID, res.Date, res.StartTime, res.EndTime))
	at := s.now()
	err = s.store.WithLocks(ctx, keys, func(ctx context.Context, tx reservations.Writer) error {
		result, err := s.checker.CheckAll(ctx, req.availabilityRequest(&res.ID))
		if err != nil {
			return err
		}
		if !result.Available {
			return apperrors.Conflict(result.Issues)
		}
		if err := s.resolveEquipment(ctx, r, req.Equipment); err != nil {
			return err
		}
		breakdown, err := s.price(ctx, r, req)
		if err != nil {
			return err
		}
		if err := tx.Promote(ctx, res.ID, breakdown, at); err != nil {
			if errors.Is(err, reservations.ErrStatusChanged) {
				return apperrors.InvalidTransition(res.ID.String(), string(reservations.StatusWaitlist), string(reservations.StatusConfirmed))
			}
			return err
		}
		res.Pricing = breakdown
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Status = reservations.StatusConfirmed
	res.PromotedAt = &at
	res.UpdatedAt = at
	s.log.LogBookingTransition(ctx, res.ID.String(), string(reservations.StatusWaitlist), string(reservations.StatusConfirmed))
	s.invalidateSlots(ctx, res.CourtID, res.Date)
	s.invalidateWaitlist(ctx, res.CourtID, res.Date)
	s.publish(ctx, notifications.EventBookingPromoted, res)
	return res, nil
}

// GetBooking returns one reservation visible to the actor
func (s *service) GetBooking(ctx context.Context, id uuid.UUID, actor Actor) (*reservations.Reservation, error) {
	return s.loadFor(ctx, id, actor)
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func normalizePage(filter *reservations.ListFilter) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
}

// ListMyBookings lists the actor's own reservations, newest first
func (s *service) ListMyBookings(ctx context.Context, actor Actor, filter reservations.ListFilter) ([]reservations.Reservation, int64, error) {
	userID := actor.UserID
	filter.UserID = &userID
	normalizePage(&filter)
	return s.store.List(ctx, filter)
}

// ListBookings lists every reservation. Admin only.
func (s *service) ListBookings(ctx context.Context, actor Actor, filter reservations.ListFilter) ([]reservations.Reservation, int64, error) {
	if !actor.IsAdmin {
		return nil, 0, apperrors.Forbidden("only administrators can list all bookings")
	}
	normalizePage(&filter)
	return s.store.List(ctx, filter)
}
