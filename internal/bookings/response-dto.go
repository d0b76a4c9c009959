package bookings

import (
	"courtly/internal/availability"
	"courtly/internal/reservations"
)

type BookingListResponse struct {
	Bookings []reservations.Reservation `json:"bookings"`
	Total    int64                      `json:"total"`
	Limit    int                        `json:"limit"`
	Offset   int                        `json:"offset"`
}

type SlotsResponse struct {
	CourtID         string              `json:"court_id"`
	Date            string              `json:"date"`
	DurationMinutes int                 `json:"duration_minutes"`
	Slots           []availability.Slot `json:"slots"`
}
