package bookings

import (
	"context"
	"time"

	"courtly/internal/availability"
	"courtly/internal/catalog"
	"courtly/internal/reservations"

	"github.com/google/uuid"
)

// Actor is the caller of an operation.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// BookingRequest is a candidate reservation: a court plus optional coach
// and equipment over one interval of one day.
type BookingRequest struct {
	CourtID   uuid.UUID
	CoachID   *uuid.UUID
	Equipment []availability.EquipmentRequest
	Date      time.Time
	StartTime string
	EndTime   string
	Notes     string
}

func (r BookingRequest) availabilityRequest(excludeID *uuid.UUID) availability.Request {
	return availability.Request{
		CourtID:   r.CourtID,
		CoachID:   r.CoachID,
		Equipment: r.Equipment,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		ExcludeID: excludeID,
	}
}

// requestFor rebuilds the booking request a stored reservation was made from.
func requestFor(r *reservations.Reservation) BookingRequest {
	equipment := make([]availability.EquipmentRequest, 0, len(r.Equipment))
	for _, line := range r.Equipment {
		equipment = append(equipment, availability.EquipmentRequest{EquipmentID: line.EquipmentID, Quantity: line.Quantity})
	}
	return BookingRequest{
		CourtID:   r.CourtID,
		CoachID:   r.CoachID,
		Equipment: equipment,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Notes:     r.Notes,
	}
}

// Catalog is the catalog read side the orchestrator needs.
type Catalog interface {
	GetCourt(ctx context.Context, id uuid.UUID) (*catalog.Court, error)
	GetCoach(ctx context.Context, id uuid.UUID) (*catalog.Coach, error)
	GetEquipment(ctx context.Context, id uuid.UUID) (*catalog.Equipment, error)
	ListActivePricingRules(ctx context.Context) ([]catalog.PricingRule, error)
}

// WaitlistNotifier marks the next waiting entry of a court and day after a
// cancellation frees capacity. It returns nil when nobody is waiting.
type WaitlistNotifier interface {
	NotifyNext(ctx context.Context, courtID uuid.UUID, day time.Time) (*reservations.Reservation, error)
}

// ServiceConfig contains configuration for the booking service
type ServiceConfig struct {
	DefaultSlotMinutes int
	SlotsCacheTTL      time.Duration
}

// DefaultServiceConfig returns default service configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		DefaultSlotMinutes: 60,
		SlotsCacheTTL:      time.Minute,
	}
}
