package pricing

import (
	"context"
	"sort"
	"time"

	"courtly/internal/catalog"
	"courtly/internal/shared/apperrors"
	"courtly/internal/timeslot"
)

// EquipmentSelection is one rented item and how many units.
type EquipmentSelection struct {
	Item     catalog.Equipment
	Quantity int
}

// Request carries already-resolved catalog entities. Calculate does no I/O.
type Request struct {
	Court     catalog.Court
	Date      time.Time
	StartTime string
	EndTime   string
	Equipment []EquipmentSelection
	Coach     *catalog.Coach
}

// RuleSource lists active pricing rules, highest priority first.
type RuleSource interface {
	ListActivePricingRules(ctx context.Context) ([]catalog.PricingRule, error)
}

// Engine loads the active rule set and prices bookings against it.
type Engine struct {
	rules RuleSource
}

func NewEngine(rules RuleSource) *Engine {
	return &Engine{rules: rules}
}

// Calculate prices req against the current active rules.
func (e *Engine) Calculate(ctx context.Context, req Request) (Breakdown, error) {
	rules, err := e.rules.ListActivePricingRules(ctx)
	if err != nil {
		return Breakdown{}, err
	}
	return Calculate(rules, req)
}

// Calculate is the pure pricing function. Rules are applied in descending
// priority, each against the running court price left by the ones before it.
// Equal priorities keep the order they were given in. A non-positive duration
// is not rejected here and yields non-positive fees.
func Calculate(rules []catalog.PricingRule, req Request) (Breakdown, error) {
	duration, err := timeslot.DurationHours(req.StartTime, req.EndTime)
	if err != nil {
		return Breakdown{}, apperrors.Wrap(apperrors.KindValidation, err, "invalid booking interval")
	}

	ordered := make([]catalog.PricingRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority > ordered[j].Priority })

	courtPrice := req.Court.BasePrice * duration
	applied := []AppliedRule{}
	for _, rule := range ordered {
		adj := Evaluate(rule, Context{
			CourtPrice: courtPrice,
			CourtType:  req.Court.Type,
			Date:       req.Date,
			StartTime:  req.StartTime,
		})
		if adj == 0 {
			continue
		}
		courtPrice += adj
		applied = append(applied, AppliedRule{Name: rule.Name, Type: string(rule.Type), Adjustment: adj})
	}

	var equipmentFee float64
	for _, sel := range req.Equipment {
		equipmentFee += sel.Item.HourlyRate * float64(sel.Quantity) * duration
	}

	var coachFee float64
	if req.Coach != nil {
		coachFee = req.Coach.HourlyRate * duration
	}

	subtotal := courtPrice + equipmentFee + coachFee
	return Breakdown{
		BasePrice:     req.Court.BasePrice,
		DurationHours: duration,
		CourtFee:      courtPrice,
		EquipmentFee:  equipmentFee,
		CoachFee:      coachFee,
		AppliedRules:  applied,
		Subtotal:      subtotal,
		Total:         subtotal,
	}, nil
}
