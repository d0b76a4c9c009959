package waitlist

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

type JoinWaitlistRequest struct {
	CourtID   string                 `json:"court_id" validate:"required,uuid"`
	CoachID   string                 `json:"coach_id,omitempty" validate:"omitempty,uuid"`
	Equipment []EquipmentItemRequest `json:"equipment,omitempty" validate:"omitempty,dive"`
	Date      string                 `json:"date" validate:"required,isodate"`
	StartTime string                 `json:"start_time" validate:"required,hhmm"`
	EndTime   string                 `json:"end_time" validate:"required,hhmm"`
	Notes     string                 `json:"notes,omitempty" validate:"max=500"`
}

func (r JoinWaitlistRequest) ToJoinRequest() (JoinRequest, error) {
	courtID, err := uuid.Parse(r.CourtID)
	if err != nil {
		return JoinRequest{}, apperrors.Validation("invalid court_id")
	}
	day, err := timeslot.ParseDate(r.Date)
	if err != nil {
		return JoinRequest{}, apperrors.Wrap(apperrors.KindValidation, err, "invalid date")
	}

	req := JoinRequest{
		CourtID:   courtID,
		Date:      day,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Notes:     r.Notes,
	}
	if r.CoachID != "" {
		coachID, err := uuid.Parse(r.CoachID)
		if err != nil {
			return JoinRequest{}, apperrors.Validation("invalid coach_id")
		}
		req.CoachID = &coachID
	}
	for _, e := range r.Equipment {
		id, err := uuid.Parse(e.EquipmentID)
		if err != nil {
			return JoinRequest{}, apperrors.Validation("invalid equipment_id %q", e.EquipmentID)
		}
		req.Equipment = append(req.Equipment, availability.EquipmentRequest{EquipmentID: id, Quantity: e.Quantity})
	}
	return req, nil
}

// QueueQuery selects a court's queue for a day, optionally one exact slot.
type QueueQuery struct {
	CourtID   string `form:"court_id" validate:"required,uuid"`
	Date      string `form:"date" validate:"required,isodate"`
	StartTime string `form:"start_time" validate:"omitempty,hhmm"`
	EndTime   string `form:"end_time" validate:"omitempty,hhmm"`
}

func (q QueueQuery) ToSlotQuery() (reservations.SlotQuery, error) {
	courtID, err := uuid.Parse(q.CourtID)
	if err != nil {
		return reservations.SlotQuery{}, apperrors.Validation("invalid court_id")
	}
	day, err := timeslot.ParseDate(q.Date)
	if err != nil {
		return reservations.SlotQuery{}, apperrors.Wrap(apperrors.KindValidation, err, "invalid date")
	}
	if (q.StartTime == "") != (q.EndTime == "") {
		return reservations.SlotQuery{}, apperrors.Validation("start_time and end_time must be given together")
	}
	return reservations.SlotQuery{CourtID: courtID, Date: day, StartTime: q.StartTime, EndTime: q.EndTime}, nil
}

// NotifyQuery selects the court and day whose queue is advanced.
type NotifyQuery struct {
	CourtID string `form:"court_id" validate:"required,uuid"`
	Date    string `form:"date" validate:"required,isodate"`
}
