package pricing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// AppliedRule records one rule's isolated contribution, in application order.
type AppliedRule struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Adjustment float64 `json:"adjustment"`
}

// Breakdown is the itemised price of a booking. It is stored on the
// reservation as a snapshot and never recomputed in place.
type Breakdown struct {
	BasePrice     float64       `json:"base_price"`
	DurationHours float64       `json:"duration_hours"`
	CourtFee      float64       `json:"court_fee"`
	EquipmentFee  float64       `json:"equipment_fee"`
	CoachFee      float64       `json:"coach_fee"`
	AppliedRules  []AppliedRule `json:"applied_rules"`
	Subtotal      float64       `json:"subtotal"`
	Total         float64       `json:"total"`
}

// Placeholder is the zero breakdown carried by waitlist entries until they
// are promoted and priced.
func Placeholder() Breakdown {
	return Breakdown{AppliedRules: []AppliedRule{}}
}

// Value implements the driver.Valuer interface for database storage
func (b Breakdown) Value() (driver.Value, error) {
	if b.AppliedRules == nil {
		b.AppliedRules = []AppliedRule{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface for database retrieval
func (b *Breakdown) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*b = Placeholder()
		return nil
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// GormDataType tells GORM how to handle this type
func (Breakdown) GormDataType() string {
	return "jsonb"
}
