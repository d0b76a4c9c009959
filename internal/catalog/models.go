package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"courtly/internal/timeslot"

	"github.com/google/uuid"
)

// CourtType is the operating type of a court.
type CourtType string

const (
	CourtTypeIndoor  CourtType = "indoor"
	CourtTypeOutdoor CourtType = "outdoor"
)

// EquipmentType groups rentable items.
type EquipmentType string

const (
	EquipmentTypeRacket      EquipmentType = "racket"
	EquipmentTypeShoes       EquipmentType = "shoes"
	EquipmentTypeShuttlecock EquipmentType = "shuttlecock"
	EquipmentTypeOther       EquipmentType = "other"
)

// RuleType selects the applicability predicate of a pricing rule.
type RuleType string

const (
	RuleTypePeakHour      RuleType = "peak_hour"
	RuleTypeWeekend       RuleType = "weekend"
	RuleTypeHoliday       RuleType = "holiday"
	RuleTypeIndoorPremium RuleType = "indoor_premium"
	RuleTypeEarlyBird     RuleType = "early_bird"
	RuleTypeCustom        RuleType = "custom"
)

// ModifierType selects how an applicable rule changes the running price.
type ModifierType string

const (
	ModifierMultiplier       ModifierType = "multiplier"
	ModifierFixedAddition    ModifierType = "fixed_addition"
	ModifierFixedSubtraction ModifierType = "fixed_subtraction"
	ModifierPercentage       ModifierType = "percentage"
)

// Scope restricts a rule to a court type.
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeIndoor  Scope = "indoor"
	ScopeOutdoor Scope = "outdoor"
)

// Matches reports whether the scope covers courts of type t.
// An empty scope is treated as all.
func (s Scope) Matches(t CourtType) bool {
	return s == "" || s == ScopeAll || string(s) == string(t)
}

// jsonb helpers shared by the column types below.

func marshalJSONB(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func unmarshalJSONB(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// WeekdaySet is a list of weekdays, 0 = Sunday .. 6 = Saturday.
type WeekdaySet []int

func (w WeekdaySet) Value() (driver.Value, error) {
	if w == nil {
		return marshalJSONB([]int{})
	}
	return marshalJSONB([]int(w))
}

func (w *WeekdaySet) Scan(value interface{}) error {
	*w = nil
	return unmarshalJSONB(value, (*[]int)(w))
}

func (WeekdaySet) GormDataType() string {
	return "jsonb"
}

// Contains reports whether day is in the set.
func (w WeekdaySet) Contains(day time.Weekday) bool {
	return slices.Contains(w, int(day))
}

// DateList is a list of calendar days stored as "YYYY-MM-DD".
type DateList []string

func (d DateList) Value() (driver.Value, error) {
	if d == nil {
		return marshalJSONB([]string{})
	}
	return marshalJSONB([]string(d))
}

func (d *DateList) Scan(value interface{}) error {
	*d = nil
	return unmarshalJSONB(value, (*[]string)(d))
}

func (DateList) GormDataType() string {
	return "jsonb"
}

// Contains reports whether the calendar day of t is listed. Malformed
// entries never match.
func (d DateList) Contains(t time.Time) bool {
	for _, raw := range d {
		day, err := timeslot.ParseDate(raw)
		if err != nil {
			continue
		}
		if timeslot.SameDay(day, t) {
			return true
		}
	}
	return false
}

// TimeRange is one "HH:MM"-"HH:MM" window.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklySchedule maps weekday (0 = Sunday) to the windows a coach works.
type WeeklySchedule map[int][]TimeRange

func (s WeeklySchedule) Value() (driver.Value, error) {
	if s == nil {
		return marshalJSONB(map[int][]TimeRange{})
	}
	return marshalJSONB(map[int][]TimeRange(s))
}

func (s *WeeklySchedule) Scan(value interface{}) error {
	*s = nil
	return unmarshalJSONB(value, (*map[int][]TimeRange)(s))
}

func (WeeklySchedule) GormDataType() string {
	return "jsonb"
}

// Covers reports whether [start, end) on the given weekday lies fully inside
// one configured window.
func (s WeeklySchedule) Covers(day time.Weekday, requested timeslot.Window) bool {
	for _, r := range s[int(day)] {
		w, err := timeslot.ParseWindow(r.Start, r.End)
		if err != nil {
			continue
		}
		if w.Contains(requested) {
			return true
		}
	}
	return false
}

// DefaultWeeklySchedule is the schedule given to coaches created without one.
func DefaultWeeklySchedule() WeeklySchedule {
	weekday := []TimeRange{{Start: "06:00", End: "21:00"}}
	weekend := []TimeRange{{Start: "09:00", End: "18:00"}}
	return WeeklySchedule{
		0: weekend,
		1: weekday,
		2: weekday,
		3: weekday,
		4: weekday,
		5: weekday,
		6: weekend,
	}
}

type Court struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255;uniqueIndex"`
	Type        CourtType `json:"type" gorm:"type:varchar(20);not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	BasePrice   float64   `json:"base_price" gorm:"not null;check:base_price >= 0"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type Coach struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string         `json:"name" gorm:"not null;size:255;uniqueIndex"`
	Email          string         `json:"email" gorm:"size:255"`
	Specialization string         `json:"specialization" gorm:"size:255"`
	Bio            string         `json:"bio" gorm:"type:text"`
	HourlyRate     float64        `json:"hourly_rate" gorm:"not null;check:hourly_rate >= 0"`
	Availability   WeeklySchedule `json:"availability"`
	IsActive       bool           `json:"is_active" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

type Equipment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name          string        `json:"name" gorm:"not null;size:255;uniqueIndex"`
	Type          EquipmentType `json:"type" gorm:"type:varchar(20);not null"`
	Description   string        `json:"description" gorm:"type:text"`
	HourlyRate    float64       `json:"hourly_rate" gorm:"not null;check:hourly_rate >= 0"`
	TotalQuantity int           `json:"total_quantity" gorm:"not null;check:total_quantity >= 0"`
	IsActive      bool          `json:"is_active" gorm:"not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName keeps the uncountable noun.
func (Equipment) TableName() string {
	return "equipment"
}

type PricingRule struct {
	ID            uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name          string       `json:"name" gorm:"not null;size:255;uniqueIndex"`
	Description   string       `json:"description" gorm:"type:text"`
	Type          RuleType     `json:"type" gorm:"type:varchar(30);not null"`
	StartTime     *string      `json:"start_time,omitempty" gorm:"size:5"`
	EndTime       *string      `json:"end_time,omitempty" gorm:"size:5"`
	DaysOfWeek    WeekdaySet   `json:"days_of_week"`
	SpecificDates DateList     `json:"specific_dates"`
	ModifierType  ModifierType `json:"modifier_type" gorm:"type:varchar(30);not null"`
	ModifierValue float64      `json:"modifier_value" gorm:"not null"`
	AppliesTo     Scope        `json:"applies_to" gorm:"type:varchar(20);not null;default:'all'"`
	Priority      int          `json:"priority" gorm:"not null;default:0;index"`
	IsActive      bool         `json:"is_active" gorm:"not null;index"`
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// CourtFilter narrows court listings.
type CourtFilter struct {
	Type       CourtType
	ActiveOnly bool
}
