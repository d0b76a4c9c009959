package waitlist

import (
	"time"

	"courtly/internal/reservations"

	"github.com/google/uuid"
)

type QueueEntry struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Position   int        `json:"position"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	JoinedAt   time.Time  `json:"joined_at"`
}

type QueueResponse struct {
	CourtID   uuid.UUID    `json:"court_id"`
	Date      string       `json:"date"`
	StartTime string       `json:"start_time,omitempty"`
	EndTime   string       `json:"end_time,omitempty"`
	Entries   []QueueEntry `json:"entries"`
	Total     int          `json:"total"`
}

func toQueueEntry(r reservations.Reservation) QueueEntry {
	entry := QueueEntry{
		ID:         r.ID,
		UserID:     r.UserID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		NotifiedAt: r.NotifiedAt,
		JoinedAt:   r.CreatedAt,
	}
	if r.WaitlistPosition != nil {
		entry.Position = *r.WaitlistPosition
	}
	return entry
}
