package waitlist

import (
	"context"
	"time"

	"courtly/internal/availability"
	"courtly/internal/catalog"
	"courtly/internal/shared/constants"

	"github.com/google/uuid"
)

const (
	// MaxQueueLength caps the entries of a single slot's queue.
	MaxQueueLength = 100
)

// JoinRequest registers interest in an exact court slot. Availability is
// not checked: the slot is expected to be full.
type JoinRequest struct {
	CourtID   uuid.UUID
	CoachID   *uuid.UUID
	Equipment []availability.EquipmentRequest
	Date      time.Time
	StartTime string
	EndTime   string
	Notes     string
}

// Catalog resolves the court and coach a waitlist entry refers to.
type Catalog interface {
	GetCourt(ctx context.Context, id uuid.UUID) (*catalog.Court, error)
	GetCoach(ctx context.Context, id uuid.UUID) (*catalog.Coach, error)
}

// ServiceConfig contains configuration for the waitlist service
type ServiceConfig struct {
	MaxQueueLength int
	QueueCacheTTL  time.Duration
}

// DefaultServiceConfig returns default service configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxQueueLength: MaxQueueLength,
		QueueCacheTTL:  constants.TTL_WAITLIST_QUEUE,
	}
}
