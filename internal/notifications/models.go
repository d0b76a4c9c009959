package notifications

import (
	"encoding/json"
	"time"

	"courtly/internal/reservations"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
)

// EventType names a booking lifecycle event.
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingCompleted EventType = "booking.completed"
	EventBookingPromoted  EventType = "booking.promoted"
	EventWaitlistJoined   EventType = "waitlist.joined"
	EventWaitlistNotified EventType = "waitlist.notified"
)

// Event is the message published for every reservation state change.
// Delivery to users is done by downstream consumers.
type Event struct {
	ID            uuid.UUID  `json:"id"`
	Type          EventType  `json:"type"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	UserID        uuid.UUID  `json:"user_id"`
	CourtID       uuid.UUID  `json:"court_id"`
	CoachID       *uuid.UUID `json:"coach_id,omitempty"`
	Date          string     `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Status        string     `json:"status"`
	Total         float64    `json:"total"`
	Position      *int       `json:"waitlist_position,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// ToJSON converts event to JSON bytes
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey keeps every event of one court in order on one partition.
func (e *Event) PartitionKey() string {
	return e.CourtID.String()
}

// NewReservationEvent snapshots r into an event of type t.
func NewReservationEvent(t EventType, r *reservations.Reservation) *Event {
	return &Event{
		ID:            uuid.New(),
		Type:          t,
		ReservationID: r.ID,
		UserID:        r.UserID,
		CourtID:       r.CourtID,
		CoachID:       r.CoachID,
		Date:          r.Date.Format(timeslot.DateLayout),
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        string(r.Status),
		Total:         r.Pricing.Total,
		Position:      r.WaitlistPosition,
		OccurredAt:    time.Now().UTC(),
	}
}
