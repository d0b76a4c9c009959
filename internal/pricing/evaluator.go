package pricing

import (
	"time"

	"courtly/internal/catalog"
	"courtly/internal/timeslot"
)

// Context is what a rule sees when it is evaluated. CourtPrice is the running
// court price after every higher-priority rule.
type Context struct {
	CourtPrice float64
	CourtType  catalog.CourtType
	Date       time.Time
	StartTime  string
}

func (c Context) weekday() time.Weekday {
	return timeslot.Day(c.Date).Weekday()
}

// hour is the integer hour-of-day of the start time; ok is false when the
// start time does not parse.
func (c Context) hour() (int, bool) {
	h, err := timeslot.HourOf(c.StartTime)
	return h, err == nil
}

// Predicate decides whether a rule applies to a booking.
type Predicate interface {
	Applies(rule catalog.PricingRule, bc Context) bool
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(rule catalog.PricingRule, bc Context) bool

func (f PredicateFunc) Applies(rule catalog.PricingRule, bc Context) bool {
	return f(rule, bc)
}

// Modifier turns an applicable rule's value into a signed adjustment of the
// running price.
type Modifier func(price, value float64) float64

var predicates = map[catalog.RuleType]Predicate{
	catalog.RuleTypePeakHour:      PredicateFunc(inHourWindow),
	catalog.RuleTypeEarlyBird:     PredicateFunc(inHourWindow),
	catalog.RuleTypeWeekend:       PredicateFunc(onWeekend),
	catalog.RuleTypeHoliday:       PredicateFunc(onHoliday),
	catalog.RuleTypeIndoorPremium: PredicateFunc(onIndoorCourt),
	catalog.RuleTypeCustom:        PredicateFunc(matchesCustom),
}

var modifiers = map[catalog.ModifierType]Modifier{
	catalog.ModifierMultiplier:       func(price, v float64) float64 { return price * (v - 1) },
	catalog.ModifierFixedAddition:    func(_, v float64) float64 { return v },
	catalog.ModifierFixedSubtraction: func(_, v float64) float64 { return -v },
	catalog.ModifierPercentage:       func(price, v float64) float64 { return price * v / 100 },
}

// RegisterPredicate adds or replaces the predicate of a rule type. Call it
// during start-up, before any evaluation.
func RegisterPredicate(ruleType catalog.RuleType, p Predicate) {
	predicates[ruleType] = p
}

// Evaluate returns the signed adjustment a rule makes to the running court
// price. Rules outside their scope, inapplicable rules and unknown rule or
// modifier types all yield 0.
func Evaluate(rule catalog.PricingRule, bc Context) float64 {
	if !rule.AppliesTo.Matches(bc.CourtType) {
		return 0
	}
	p, ok := predicates[rule.Type]
	if !ok || !p.Applies(rule, bc) {
		return 0
	}
	m, ok := modifiers[rule.ModifierType]
	if !ok {
		return 0
	}
	return m(bc.CourtPrice, rule.ModifierValue)
}

// ruleHours returns the integer start and end hours of a rule's window.
func ruleHours(rule catalog.PricingRule) (start, end int, ok bool) {
	if rule.StartTime == nil || rule.EndTime == nil {
		return 0, 0, false
	}
	start, err := timeslot.HourOf(*rule.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err = timeslot.HourOf(*rule.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func inHourWindow(rule catalog.PricingRule, bc Context) bool {
	start, end, ok := ruleHours(rule)
	if !ok {
		return false
	}
	hour, ok := bc.hour()
	return ok && hour >= start && hour < end
}

// onWeekend uses the rule's day list, or Saturday and Sunday when it is empty.
func onWeekend(rule catalog.PricingRule, bc Context) bool {
	day := bc.weekday()
	if len(rule.DaysOfWeek) == 0 {
		return day == time.Saturday || day == time.Sunday
	}
	return rule.DaysOfWeek.Contains(day)
}

func onHoliday(rule catalog.PricingRule, bc Context) bool {
	return rule.SpecificDates.Contains(bc.Date)
}

func onIndoorCourt(_ catalog.PricingRule, bc Context) bool {
	return bc.CourtType == catalog.CourtTypeIndoor
}

func matchesCustom(rule catalog.PricingRule, bc Context) bool {
	if len(rule.DaysOfWeek) > 0 && !rule.DaysOfWeek.Contains(bc.weekday()) {
		return false
	}
	if rule.StartTime == nil || rule.EndTime == nil {
		return true
	}
	return inHourWindow(rule, bc)
}
