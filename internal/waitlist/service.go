package waitlist

import (
	"context"
	"log/slog"
	"time"

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

// Service interface defines the contract for waitlist business operations
type Service interface {
	SetCacheService(cacheService cache.Service)

	JoinWaitlist(ctx context.Context, userID uuid.UUID, req JoinRequest) (*reservations.Reservation, error)
	// NotifyNext stamps the earliest not yet notified entry of the court and
	// day. It returns nil when nobody is waiting.
	NotifyNext(ctx context.Context, courtID uuid.UUID, day time.Time) (*reservations.Reservation, error)
	GetQueue(ctx context.Context, slot reservations.SlotQuery) (*QueueResponse, error)
}

// service implements the Service interface
type service struct {
	store        reservations.Store
	catalog      Catalog
	publisher    notifications.Publisher
	cacheService cache.Service
	config       *ServiceConfig
	log          *logger.Logger
	now          func() time.Time
}

// NewService creates a new waitlist service
func NewService(store reservations.Store, cat Catalog, publisher notifications.Publisher, config *ServiceConfig) Service {
	if config == nil {
		config = DefaultServiceConfig()
	}
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &service{
		store:     store,
		catalog:   cat,
		publisher: publisher,
		config:    config,
		log:       logger.GetDefault(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetCacheService sets the cache used for queue listings
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) validateJoinRequest(ctx context.Context, req JoinRequest) error {
	if req.CourtID == uuid.Nil {
		return apperrors.Validation("court_id is required")
	}
	if req.Date.IsZero() {
		return apperrors.Validation("date is required")
	}
	if _, err := timeslot.ParseWindow(req.StartTime, req.EndTime); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, err, "invalid waitlist interval")
	}
	for _, e := range req.Equipment {
		if e.EquipmentID == uuid.Nil || e.Quantity < 1 {
			return apperrors.Validation("each equipment line needs an id and a quantity of at least 1")
		}
	}

	court, err := s.catalog.GetCourt(ctx, req.CourtID)
	if err != nil {
		return err
	}
	if !court.IsActive {
		return apperrors.Inactive("court", court.ID.String())
	}
	if req.CoachID != nil {
		coach, err := s.catalog.GetCoach(ctx, *req.CoachID)
		if err != nil {
			return err
		}
		if !coach.IsActive {
			return apperrors.Inactive("coach", coach.ID.String())
		}
	}
	return nil
}

// JoinWaitlist queues the user for an exact slot. Positions are FIFO per
// (court, day, start, end) and assigned under the slot's lock. The entry
// carries a placeholder price until it is promoted.
func (s *service) JoinWaitlist(ctx context.Context, userID uuid.UUID, req JoinRequest) (*reservations.Reservation, error) {
	if err := s.validateJoinRequest(ctx, req); err != nil {
		return nil, err
	}

	w, _ := timeslot.ParseWindow(req.StartTime, req.EndTime)
	entry := &reservations.Reservation{
		UserID:  userID,
		CourtID: req.CourtID,
		CoachID: req.CoachID,
		Status:  reservations.StatusWaitlist,
		Pricing: pricing.Placeholder(),
		Notes:   req.Notes,
	}
	entry.SetInterval(req.Date, w)
	for _, e := range req.Equipment {
		entry.Equipment = append(entry.Equipment, reservations.EquipmentLine{EquipmentID: e.EquipmentID, Quantity: e.Quantity})
	}
	if entry.Equipment == nil {
		entry.Equipment = reservations.EquipmentLines{}
	}

	slot := reservations.SlotQuery{CourtID: entry.CourtID, Date: entry.Date, StartTime: entry.StartTime, EndTime: entry.EndTime}
	lockKey := reservations.WaitlistKey(entry.CourtID, entry.Date, entry.StartTime, entry.EndTime)
	err := s.store.WithLocks(ctx, []string{lockKey}, func(ctx context.Context, tx reservations.Writer) error {
		count, err := s.store.CountWaitlistedForSlot(ctx, slot)
		if err != nil {
			return err
		}
		if s.config.MaxQueueLength > 0 && int(count) >= s.config.MaxQueueLength {
			return apperrors.New(apperrors.KindAvailabilityConflict, "waitlist is full (max %d entries)", s.config.MaxQueueLength)
		}
		pos := int(count) + 1
		entry.WaitlistPosition = &pos
		return tx.Insert(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.log.LogWaitlistJoined(ctx, entry.ID.String(), entry.CourtID.String(), userID.String(), *entry.WaitlistPosition)
	s.invalidateQueue(ctx, entry.CourtID, entry.Date)
	s.publish(ctx, notifications.EventWaitlistJoined, entry)
	return entry, nil
}

// NotifyNext marks the next entry in line. Stamping is conditional, so two
// concurrent cancellations never notify the same entry twice.
func (s *service) NotifyNext(ctx context.Context, courtID uuid.UUID, day time.Time) (*reservations.Reservation, error) {
	day = timeslot.Day(day)
	queued, err := s.store.FindWaitlisted(ctx, reservations.SlotQuery{CourtID: courtID, Date: day})
	if err != nil {
		return nil, err
	}

	for i := range queued {
		entry := &queued[i]
		if entry.NotifiedAt != nil {
			continue
		}
		at := s.now()
		stamped, err := s.store.MarkNotified(ctx, entry.ID, at)
		if err != nil {
			return nil, err
		}
		if !stamped {
			continue
		}
		entry.NotifiedAt = &at
		entry.UpdatedAt = at

		s.log.LogWaitlistNotified(ctx, entry.ID.String(), courtID.String())
		s.invalidateQueue(ctx, courtID, day)
		s.publish(ctx, notifications.EventWaitlistNotified, entry)
		return entry, nil
	}
	return nil, nil
}

// GetQueue lists a court's waitlist for a day, or for one slot when the
// times are set, ordered by position.
func (s *service) GetQueue(ctx context.Context, slot reservations.SlotQuery) (*QueueResponse, error) {
	slot.Date = timeslot.Day(slot.Date)
	if _, err := s.catalog.GetCourt(ctx, slot.CourtID); err != nil {
		return nil, err
	}

	date := slot.Date.Format(timeslot.DateLayout)
	cacheKey := constants.BuildWaitlistQueueKey(slot.CourtID.String(), date, slot.StartTime, slot.EndTime)
	if s.cacheService != nil {
		var cached QueueResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	queued, err := s.store.FindWaitlisted(ctx, slot)
	if err != nil {
		return nil, err
	}
	resp := &QueueResponse{
		CourtID:   slot.CourtID,
		Date:      date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Entries:   make([]QueueEntry, 0, len(queued)),
		Total:     len(queued),
	}
	for _, r := range queued {
		resp.Entries = append(resp.Entries, toQueueEntry(r))
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, resp, s.config.QueueCacheTTL); err != nil {
			s.log.Warn("Failed to cache waitlist queue", slog.String("key", cacheKey), slog.Any("error", err))
		}
	}
	return resp, nil
}

func (s *service) invalidateQueue(ctx context.Context, courtID uuid.UUID, day time.Time) {
	if s.cacheService == nil {
		return
	}
	pattern := constants.BuildWaitlistQueuePattern(courtID.String(), day.Format(timeslot.DateLayout))
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		s.log.Warn("Failed to invalidate waitlist cache", slog.String("pattern", pattern), slog.Any("error", err))
	}
}

func (s *service) publish(ctx context.Context, t notifications.EventType, r *reservations.Reservation) {
	if err := s.publisher.Publish(ctx, notifications.NewReservationEvent(t, r)); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish waitlist event", err, map[string]interface{}{
			"type":           string(t),
			"reservation_id": r.ID.String(),
		})
	}
}
