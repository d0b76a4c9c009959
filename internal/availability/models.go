package availability

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentRequest asks for Quantity units of one item.
type EquipmentRequest struct {
	EquipmentID uuid.UUID `json:"equipment_id"`
	Quantity    int       `json:"quantity"`
}

// Request is a candidate booking. ExcludeID leaves one reservation out of
// the conflict search so an existing booking can be re-checked in place.
type Request struct {
	CourtID   uuid.UUID
	CoachID   *uuid.UUID
	Equipment []EquipmentRequest
	Date      time.Time
	StartTime string
	EndTime   string
	ExcludeID *uuid.UUID
}

// Resource names the dimension an issue belongs to.
type Resource string

const (
	ResourceCourt     Resource = "court"
	ResourceCoach     Resource = "coach"
	ResourceEquipment Resource = "equipment"
)

// ItemReason explains why one equipment item cannot be supplied.
type ItemReason string

const (
	ReasonNotFound     ItemReason = "not_found"
	ReasonInactive     ItemReason = "inactive"
	ReasonInsufficient ItemReason = "insufficient_quantity"
)

// ConflictRef points at the reservation that blocks a court or coach.
type ConflictRef struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
}

type UnavailableItem struct {
	EquipmentID uuid.UUID  `json:"equipment_id"`
	Name        string     `json:"name,omitempty"`
	Reason      ItemReason `json:"reason"`
	Requested   int        `json:"requested"`
	Available   int        `json:"available"`
}

// Issue is one failing resource dimension.
type Issue struct {
	Resource         Resource          `json:"resource"`
	Message          string            `json:"message"`
	Conflict         *ConflictRef      `json:"conflict,omitempty"`
	UnavailableItems []UnavailableItem `json:"unavailable_items,omitempty"`
}

// Result is the aggregate of the court, coach and equipment checks. Issues
// are ordered court, coach, equipment.
type Result struct {
	Available bool    `json:"available"`
	Issues    []Issue `json:"issues"`
}

// Slot is one cell of a court's daily grid.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}
