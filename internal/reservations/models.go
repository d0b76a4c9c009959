package reservations

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"courtly/internal/pricing"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
)

// EquipmentLine is one requested equipment item on a reservation.
type EquipmentLine struct {
	EquipmentID uuid.UUID `json:"equipment_id"`
	Quantity    int       `json:"quantity"`
}

// EquipmentLines is stored as a jsonb array so containment queries can find
// every reservation holding a given item.
type EquipmentLines []EquipmentLine

// Value implements the driver.Valuer interface for database storage
func (l EquipmentLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]EquipmentLine(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *EquipmentLines) Scan(value interface{}) error {
	*l = nil
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]EquipmentLine)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]EquipmentLine)(l))
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// GormDataType tells GORM how to handle this type
func (EquipmentLines) GormDataType() string {
	return "jsonb"
}

// QuantityOf sums the units of one item across the lines.
func (l EquipmentLines) QuantityOf(id uuid.UUID) int {
	total := 0
	for _, line := range l {
		if line.EquipmentID == id {
			total += line.Quantity
		}
	}
	return total
}

type Reservation struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	CourtID   uuid.UUID      `json:"court_id" gorm:"type:uuid;not null;index:idx_reservations_court_date,priority:1"`
	CoachID   *uuid.UUID     `json:"coach_id,omitempty" gorm:"type:uuid;index:idx_reservations_coach_date,priority:1"`
	Equipment EquipmentLines `json:"equipment"`

	Date        time.Time `json:"date" gorm:"type:date;not null;index:idx_reservations_court_date,priority:2;index:idx_reservations_coach_date,priority:2"`
	StartTime   string    `json:"start_time" gorm:"size:5;not null"`
	EndTime     string    `json:"end_time" gorm:"size:5;not null"`
	StartMinute int       `json:"-" gorm:"not null"`
	EndMinute   int       `json:"-" gorm:"not null;check:end_minute > start_minute"`

	Status  Status            `json:"status" gorm:"type:varchar(20);not null;index"`
	Pricing pricing.Breakdown `json:"pricing" gorm:"not null"`
	Notes   string            `json:"notes,omitempty" gorm:"type:text"`

	WaitlistPosition *int       `json:"waitlist_position,omitempty"`
	NotifiedAt       *time.Time `json:"notified_at,omitempty"`
	PromotedAt       *time.Time `json:"promoted_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy      *uuid.UUID `json:"cancelled_by,omitempty" gorm:"type:uuid"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Window parses the reservation's interval.
func (r *Reservation) Window() (timeslot.Window, error) {
	return timeslot.ParseWindow(r.StartTime, r.EndTime)
}

// SetInterval stores the day and times, keeping the minute columns in sync.
func (r *Reservation) SetInterval(day time.Time, w timeslot.Window) {
	r.Date = timeslot.Day(day)
	r.StartTime = timeslot.Format(w.Start)
	r.EndTime = timeslot.Format(w.End)
	r.StartMinute = w.Start
	r.EndMinute = w.End
}

// OwnedBy reports whether userID made the reservation.
func (r *Reservation) OwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// Lock keys name the resources a write serialises on. Keys are per calendar
// day so unrelated days never contend.

func CourtKey(courtID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("court:%s:%s", courtID, day.Format(timeslot.DateLayout))
}

func CoachKey(coachID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("coach:%s:%s", coachID, day.Format(timeslot.DateLayout))
}

func EquipmentKey(equipmentID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("equipment:%s:%s", equipmentID, day.Format(timeslot.DateLayout))
}

func WaitlistKey(courtID uuid.UUID, day time.Time, start, end string) string {
	return fmt.Sprintf("waitlist:%s:%s:%s:%s", courtID, day.Format(timeslot.DateLayout), start, end)
}

// ResourceKeys returns the lock keys of every resource the reservation holds.
func (r *Reservation) ResourceKeys() []string {
	keys := []string{CourtKey(r.CourtID, r.Date)}
	if r.CoachID != nil {
		keys = append(keys, CoachKey(*r.CoachID, r.Date))
	}
	for _, line := range r.Equipment {
		keys = append(keys, EquipmentKey(line.EquipmentID, r.Date))
	}
	return keys
}

// ListFilter narrows reservation listings. Zero values do not filter.
type ListFilter struct {
	UserID  *uuid.UUID
	CourtID *uuid.UUID
	Status  Status
	Date    *time.Time
	Limit   int
	Offset  int
}

// SlotQuery identifies an exact waitlist slot.
type SlotQuery struct {
	CourtID   uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
}

// Transition is a conditional status change.
type Transition struct {
	From Status
	To   Status
	At   time.Time
	By   *uuid.UUID
}
