package pricing

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"courtly/internal/catalog"
	"courtly/internal/shared/apperrors"
)

var outdoorCourt = catalog.Court{Name: "Outdoor Court 1", Type: catalog.CourtTypeOutdoor, BasePrice: 20, IsActive: true}

func peakRule(priority int) catalog.PricingRule {
	return catalog.PricingRule{
		Name: "Peak Hour Surcharge", Type: catalog.RuleTypePeakHour,
		StartTime: strPtr("18:00"), EndTime: strPtr("21:00"),
		ModifierType: catalog.ModifierMultiplier, ModifierValue: 1.5,
		AppliesTo: catalog.ScopeAll, Priority: priority, IsActive: true,
	}
}

func weekendRule(priority int) catalog.PricingRule {
	return catalog.PricingRule{
		Name: "Weekend Rate", Type: catalog.RuleTypeWeekend, DaysOfWeek: catalog.WeekdaySet{0, 6},
		ModifierType: catalog.ModifierFixedAddition, ModifierValue: 10,
		AppliesTo: catalog.ScopeAll, Priority: priority, IsActive: true,
	}
}

func TestCalculateSaturdayPeak(t *testing.T) {
	// Given in ascending order; priority must still put peak first.
	rules := []catalog.PricingRule{weekendRule(5), peakRule(10)}

	got, err := Calculate(rules, Request{Court: outdoorCourt, Date: saturday, StartTime: "18:00", EndTime: "19:00"})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := Breakdown{
		BasePrice:     20,
		DurationHours: 1,
		CourtFee:      40,
		AppliedRules: []AppliedRule{
			{Name: "Peak Hour Surcharge", Type: "peak_hour", Adjustment: 10},
			{Name: "Weekend Rate", Type: "weekend", Adjustment: 10},
		},
		Subtotal: 40,
		Total:    40,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Calculate() = %+v\nwant %+v", got, want)
	}
}

func TestRuleOrderChangesPrice(t *testing.T) {
	double := catalog.PricingRule{Name: "double", Type: catalog.RuleTypeCustom, ModifierType: catalog.ModifierMultiplier, ModifierValue: 2, IsActive: true}
	plusTen := catalog.PricingRule{Name: "plus ten", Type: catalog.RuleTypeCustom, ModifierType: catalog.ModifierFixedAddition, ModifierValue: 10, IsActive: true}
	req := Request{Court: outdoorCourt, Date: saturday, StartTime: "10:00", EndTime: "11:00"}

	double.Priority, plusTen.Priority = 10, 5
	multiplyFirst, err := Calculate([]catalog.PricingRule{double, plusTen}, req)
	if err != nil {
		t.Fatal(err)
	}

	double.Priority, plusTen.Priority = 5, 10
	addFirst, err := Calculate([]catalog.PricingRule{double, plusTen}, req)
	if err != nil {
		t.Fatal(err)
	}

	if multiplyFirst.CourtFee != 50 {
		t.Errorf("multiply then add = %v, want 50", multiplyFirst.CourtFee)
	}
	if addFirst.CourtFee != 60 {
		t.Errorf("add then multiply = %v, want 60", addFirst.CourtFee)
	}
}

func TestCalculateFees(t *testing.T) {
	racket := catalog.Equipment{Name: "Professional Racket", HourlyRate: 5, TotalQuantity: 20, IsActive: true}
	shuttles := catalog.Equipment{Name: "Shuttlecock Pack", HourlyRate: 2, TotalQuantity: 50, IsActive: true}
	coach := catalog.Coach{Name: "Michael Johnson", HourlyRate: 50, IsActive: true}

	got, err := Calculate(nil, Request{
		Court:     outdoorCourt,
		Date:      monday,
		StartTime: "10:00",
		EndTime:   "11:30",
		Equipment: []EquipmentSelection{{Item: racket, Quantity: 2}, {Item: shuttles, Quantity: 1}},
		Coach:     &coach,
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	if got.DurationHours != 1.5 {
		t.Errorf("DurationHours = %v, want 1.5", got.DurationHours)
	}
	if got.CourtFee != 30 {
		t.Errorf("CourtFee = %v, want 30", got.CourtFee)
	}
	if got.EquipmentFee != 18 {
		t.Errorf("EquipmentFee = %v, want 18", got.EquipmentFee)
	}
	if got.CoachFee != 75 {
		t.Errorf("CoachFee = %v, want 75", got.CoachFee)
	}
	if got.Total != 123 || got.Subtotal != got.Total {
		t.Errorf("Total = %v, Subtotal = %v, want 123", got.Total, got.Subtotal)
	}
	if len(got.AppliedRules) != 0 {
		t.Errorf("AppliedRules = %v, want none", got.AppliedRules)
	}
}

func TestCalculateSkipsInactiveRules(t *testing.T) {
	off := peakRule(10)
	off.IsActive = false

	got, err := Calculate([]catalog.PricingRule{off}, Request{Court: outdoorCourt, Date: saturday, StartTime: "18:00", EndTime: "19:00"})
	if err != nil {
		t.Fatal(err)
	}
	if got.CourtFee != 20 {
		t.Errorf("CourtFee = %v, want 20", got.CourtFee)
	}
}

func TestCalculateNonPositiveDurationPropagates(t *testing.T) {
	got, err := Calculate(nil, Request{Court: outdoorCourt, Date: monday, StartTime: "11:00", EndTime: "10:00"})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if got.CourtFee != -20 || got.Total != -20 {
		t.Errorf("CourtFee = %v, Total = %v, want -20", got.CourtFee, got.Total)
	}
}

func TestCalculateMalformedTime(t *testing.T) {
	_, err := Calculate(nil, Request{Court: outdoorCourt, Date: monday, StartTime: "10am", EndTime: "11:00"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Calculate() error = %v, want validation", err)
	}
}

type staticRules []catalog.PricingRule

func (s staticRules) ListActivePricingRules(context.Context) ([]catalog.PricingRule, error) {
	return s, nil
}

func TestEngineIsDeterministic(t *testing.T) {
	engine := NewEngine(staticRules{peakRule(10), weekendRule(5)})
	req := Request{Court: outdoorCourt, Date: saturday, StartTime: "18:00", EndTime: "20:00"}

	first, err := engine.Calculate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Calculate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	a, _ := first.Value()
	b, _ := second.Value()
	if a != b {
		t.Errorf("breakdowns differ:\n%v\n%v", a, b)
	}
}

type failingRules struct{}

func (failingRules) ListActivePricingRules(context.Context) ([]catalog.PricingRule, error) {
	return nil, errors.New("connection refused")
}

func TestEngineSurfacesRuleLoadError(t *testing.T) {
	_, err := NewEngine(failingRules{}).Calculate(context.Background(), Request{Court: outdoorCourt, Date: monday, StartTime: "10:00", EndTime: "11:00"})
	if err == nil {
		t.Fatal("expected rule load error")
	}
}
