package bookings

import (
	"courtly/internal/availability"
	"courtly/internal/reservations"
	"courtly/internal/shared/apperrors"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
)

type EquipmentItemRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

// BookingRequestBody is the body of check-availability, calculate-price and
// create.
type BookingRequestBody struct {
	CourtID   string                 `json:"court_id" validate:"required,uuid"`
	CoachID   string                 `json:"coach_id,omitempty" validate:"omitempty,uuid"`
	Equipment []EquipmentItemRequest `json:"equipment,omitempty" validate:"omitempty,dive"`
	Date      string                 `json:"date" validate:"required,isodate"`
	StartTime string                 `json:"start_time" validate:"required,hhmm"`
	EndTime   string                 `json:"end_time" validate:"required,hhmm"`
	Notes     string                 `json:"notes,omitempty" validate:"max=500"`
}

// ToBookingRequest converts a validated body.
func (b BookingRequestBody) ToBookingRequest() (BookingRequest, error) {
	courtID, err := uuid.Parse(b.CourtID)
	if err != nil {
		return BookingRequest{}, apperrors.Validation("invalid court_id")
	}
	day, err := timeslot.ParseDate(b.Date)
	if err != nil {
		return BookingRequest{}, apperrors.Wrap(apperrors.KindValidation, err, "invalid date")
	}

	req := BookingRequest{
		CourtID:   courtID,
		Date:      day,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Notes:     b.Notes,
	}
	if b.CoachID != "" {
		coachID, err := uuid.Parse(b.CoachID)
		if err != nil {
			return BookingRequest{}, apperrors.Validation("invalid coach_id")
		}
		req.CoachID = &coachID
	}
	for _, e := range b.Equipment {
		id, err := uuid.Parse(e.EquipmentID)
		if err != nil {
			return BookingRequest{}, apperrors.Validation("invalid equipment_id %q", e.EquipmentID)
		}
		req.Equipment = append(req.Equipment, availability.EquipmentRequest{EquipmentID: id, Quantity: e.Quantity})
	}
	return req, nil
}

// ListBookingsQuery filters booking listings.
type ListBookingsQuery struct {
	Status  string `form:"status" validate:"omitempty,oneof=pending confirmed waitlist cancelled completed"`
	CourtID string `form:"court_id" validate:"omitempty,uuid"`
	Date    string `form:"date" validate:"omitempty,isodate"`
	Limit   int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset  int    `form:"offset" validate:"omitempty,min=0"`
}

func (q ListBookingsQuery) ToFilter() reservations.ListFilter {
	filter := reservations.ListFilter{
		Status: reservations.Status(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if id, err := uuid.Parse(q.CourtID); err == nil {
		filter.CourtID = &id
	}
	if day, err := timeslot.ParseDate(q.Date); err == nil {
		filter.Date = &day
	}
	return filter
}

// SlotsQuery sets the grid step in minutes.
type SlotsQuery struct {
	Duration int `form:"duration" validate:"omitempty,min=15,max=480"`
}
