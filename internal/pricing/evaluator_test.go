package pricing

import (
	"testing"
	"time"

	"courtly/internal/catalog"
)

func strPtr(s string) *string { return &s }

// saturday is 2025-03-08, monday 2025-03-10.
var (
	saturday = time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

func TestEvaluate(t *testing.T) {
	peak := catalog.PricingRule{
		Name: "Peak Hour Surcharge", Type: catalog.RuleTypePeakHour,
		StartTime: strPtr("18:00"), EndTime: strPtr("21:00"),
		ModifierType: catalog.ModifierMultiplier, ModifierValue: 1.5, AppliesTo: catalog.ScopeAll,
	}
	earlyBird := catalog.PricingRule{
		Name: "Early Bird Discount", Type: catalog.RuleTypeEarlyBird,
		StartTime: strPtr("06:00"), EndTime: strPtr("09:00"),
		ModifierType: catalog.ModifierPercentage, ModifierValue: -15, AppliesTo: catalog.ScopeAll,
	}
	weekend := catalog.PricingRule{
		Name: "Weekend Rate", Type: catalog.RuleTypeWeekend,
		ModifierType: catalog.ModifierFixedAddition, ModifierValue: 10, AppliesTo: catalog.ScopeAll,
	}
	fridayOnly := weekend
	fridayOnly.DaysOfWeek = catalog.WeekdaySet{5}
	holiday := catalog.PricingRule{
		Name: "Holiday", Type: catalog.RuleTypeHoliday, SpecificDates: catalog.DateList{"2025-03-10"},
		ModifierType: catalog.ModifierFixedAddition, ModifierValue: 15, AppliesTo: catalog.ScopeAll,
	}
	indoor := catalog.PricingRule{
		Name: "Indoor Premium", Type: catalog.RuleTypeIndoorPremium,
		ModifierType: catalog.ModifierFixedAddition, ModifierValue: 5, AppliesTo: catalog.ScopeIndoor,
	}
	loyalty := catalog.PricingRule{
		Name: "Weekday Loyalty", Type: catalog.RuleTypeCustom, DaysOfWeek: catalog.WeekdaySet{1, 2, 3},
		StartTime: strPtr("12:00"), EndTime: strPtr("14:00"),
		ModifierType: catalog.ModifierFixedSubtraction, ModifierValue: 4, AppliesTo: catalog.ScopeOutdoor,
	}
	unknownModifier := weekend
	unknownModifier.ModifierType = "compound"
	unknownType := weekend
	unknownType.Type = "lunar"
	peakNoWindow := peak
	peakNoWindow.EndTime = nil

	tests := []struct {
		name string
		rule catalog.PricingRule
		ctx  Context
		want float64
	}{
		{name: "peak inside window", rule: peak, ctx: Context{CourtPrice: 20, CourtType: catalog.CourtTypeOutdoor, Date: monday, StartTime: "18:00"}, want: 10},
		{name: "peak uses integer hour", rule: peak, ctx: Context{CourtPrice: 20, Date: monday, StartTime: "20:59"}, want: 10},
		{name: "peak end hour exclusive", rule: peak, ctx: Context{CourtPrice: 20, Date: monday, StartTime: "21:00"}, want: 0},
		{name: "peak before window", rule: peak, ctx: Context{CourtPrice: 20, Date: monday, StartTime: "17:30"}, want: 0},
		{name: "peak without end never applies", rule: peakNoWindow, ctx: Context{CourtPrice: 20, Date: monday, StartTime: "18:00"}, want: 0},
		{name: "early bird percentage", rule: earlyBird, ctx: Context{CourtPrice: 20, Date: monday, StartTime: "07:00"}, want: -3},
		{name: "weekend default saturday", rule: weekend, ctx: Context{CourtPrice: 20, Date: saturday, StartTime: "10:00"}, want: 10},
		{name: "weekend default sunday", rule: weekend, ctx: Context{CourtPrice: 20, Date: saturday.AddDate(0, 0, 1), StartTime: "10:00"}, want: 10},
		{name: "weekend default weekday", rule: weekend, ctx: Context{CourtPrice: 20, Date: monday, StartTime: "10:00"}, want: 0},
		{name: "weekend explicit list excludes saturday", rule: fridayOnly, ctx: Context{CourtPrice: 20, Date: saturday, StartTime: "10:00"}, want: 0},
		{name: "weekend explicit list friday", rule: fridayOnly, ctx: Context{CourtPrice: 20, Date: saturday.AddDate(0, 0, -1), StartTime: "10:00"}, want: 10},
		{name: "holiday same day later time", rule: holiday, ctx: Context{CourtPrice: 20, Date: monday.Add(19 * time.Hour), StartTime: "19:00"}, want: 15},
		{name: "holiday other day", rule: holiday, ctx: Context{CourtPrice: 20, Date: saturday, StartTime: "19:00"}, want: 0},
		{name: "indoor premium indoor", rule: indoor, ctx: Context{CourtPrice: 30, CourtType: catalog.CourtTypeIndoor, Date: monday, StartTime: "10:00"}, want: 5},
		{name: "indoor premium out of scope", rule: indoor, ctx: Context{CourtPrice: 20, CourtType: catalog.CourtTypeOutdoor, Date: monday, StartTime: "10:00"}, want: 0},
		{name: "custom day and window", rule: loyalty, ctx: Context{CourtPrice: 20, CourtType: catalog.CourtTypeOutdoor, Date: monday, StartTime: "13:00"}, want: -4},
		{name: "custom outside window", rule: loyalty, ctx: Context{CourtPrice: 20, CourtType: catalog.CourtTypeOutdoor, Date: monday, StartTime: "15:00"}, want: 0},
		{name: "custom wrong day", rule: loyalty, ctx: Context{CourtPrice: 20, CourtType: catalog.CourtTypeOutdoor, Date: saturday, StartTime: "13:00"}, want: 0},
		{name: "unknown modifier", rule: unknownModifier, ctx: Context{CourtPrice: 20, Date: saturday, StartTime: "10:00"}, want: 0},
		{name: "unknown rule type", rule: unknownType, ctx: Context{CourtPrice: 20, Date: saturday, StartTime: "10:00"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.rule, tt.ctx); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustomWithoutConstraintsAlwaysApplies(t *testing.T) {
	rule := catalog.PricingRule{
		Type: catalog.RuleTypeCustom, ModifierType: catalog.ModifierMultiplier, ModifierValue: 2,
	}
	if got := Evaluate(rule, Context{CourtPrice: 25, Date: monday, StartTime: "23:00"}); got != 25 {
		t.Errorf("Evaluate() = %v, want 25", got)
	}
}

func TestRegisterPredicate(t *testing.T) {
	const members catalog.RuleType = "members_night"
	t.Cleanup(func() { delete(predicates, members) })

	RegisterPredicate(members, PredicateFunc(func(_ catalog.PricingRule, bc Context) bool {
		return bc.weekday() == time.Monday
	}))

	rule := catalog.PricingRule{Type: members, ModifierType: catalog.ModifierFixedSubtraction, ModifierValue: 5}
	if got := Evaluate(rule, Context{CourtPrice: 20, Date: monday, StartTime: "19:00"}); got != -5 {
		t.Errorf("Evaluate() = %v, want -5", got)
	}
	if got := Evaluate(rule, Context{CourtPrice: 20, Date: saturday, StartTime: "19:00"}); got != 0 {
		t.Errorf("Evaluate() = %v, want 0", got)
	}
}
