package availability_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"courtly/internal/availability"
	"courtly/internal/catalog"
	"courtly/internal/catalog/catalogtest"
	"courtly/internal/reservations"
	"courtly/internal/reservations/reservationstest"
	"courtly/internal/shared/apperrors"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store   *reservationstest.Memory
	catalog *catalogtest.Memory
	checker *availability.Checker
	court   uuid.UUID
}

func newFixture() *fixture {
	store := reservationstest.NewMemory()
	cat := catalogtest.NewMemory()
	return &fixture{
		store:   store,
		catalog: cat,
		checker: availability.NewChecker(store, cat),
		court:   uuid.New(),
	}
}

func (f *fixture) book(r reservations.Reservation) reservations.Reservation {
	if r.CourtID == uuid.Nil {
		r.CourtID = f.court
	}
	if r.Date.IsZero() {
		r.Date = monday
	}
	if r.Status == "" {
		r.Status = reservations.StatusConfirmed
	}
	return f.store.Put(r)
}

func TestCheckAllCourt(t *testing.T) {
	tests := []struct {
		name      string
		existing  reservations.Status
		start     string
		end       string
		available bool
	}{
		{"free court", "", "08:00", "09:00", true},
		{"touching before", reservations.StatusConfirmed, "09:00", "10:00", true},
		{"touching after", reservations.StatusConfirmed, "11:00", "12:00", true},
		{"overlap confirmed", reservations.StatusConfirmed, "10:30", "11:30", false},
		{"overlap pending", reservations.StatusPending, "09:30", "10:30", false},
		{"cancelled does not block", reservations.StatusCancelled, "10:00", "11:00", true},
		{"waitlist does not block", reservations.StatusWaitlist, "10:00", "11:00", true},
		{"completed does not block", reservations.StatusCompleted, "10:00", "11:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.existing != "" {
				f.book(reservations.Reservation{StartTime: "10:00", EndTime: "11:00", Status: tt.existing})
			}

			got, err := f.checker.CheckAll(context.Background(), availability.Request{
				CourtID: f.court, Date: monday, StartTime: tt.start, EndTime: tt.end,
			})
			if err != nil {
				t.Fatalf("CheckAll() error: %v", err)
			}
			if got.Available != tt.available {
				t.Errorf("Available = %v, want %v (issues %+v)", got.Available, tt.available, got.Issues)
			}
			if !tt.available && (len(got.Issues) != 1 || got.Issues[0].Resource != availability.ResourceCourt) {
				t.Errorf("Issues = %+v, want one court issue", got.Issues)
			}
		})
	}
}

func TestCheckAllComparesCalendarDay(t *testing.T) {
	f := newFixture()
	f.book(reservations.Reservation{StartTime: "10:00", EndTime: "11:00"})

	// Same day at a non-midnight instant still conflicts.
	got, _ := f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, Date: monday.Add(17 * time.Hour), StartTime: "10:00", EndTime: "11:00",
	})
	if got.Available {
		t.Error("same-day request should conflict")
	}

	got, _ = f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, Date: monday.AddDate(0, 0, 1), StartTime: "10:00", EndTime: "11:00",
	})
	if !got.Available {
		t.Error("next-day request should be free")
	}
}

func TestCheckAllExcludesReservation(t *testing.T) {
	f := newFixture()
	own := f.book(reservations.Reservation{StartTime: "10:00", EndTime: "11:00"})

	got, err := f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, Date: monday, StartTime: "10:00", EndTime: "11:30", ExcludeID: &own.ID,
	})
	if err != nil || !got.Available {
		t.Errorf("CheckAll() = %+v, %v, want available", got, err)
	}
}

func TestCheckAllCoach(t *testing.T) {
	f := newFixture()
	coachID := uuid.New()
	otherCourt := uuid.New()
	f.book(reservations.Reservation{CourtID: otherCourt, CoachID: &coachID, StartTime: "10:00", EndTime: "11:00"})

	got, err := f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, CoachID: &coachID, Date: monday, StartTime: "10:30", EndTime: "11:30",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Available || len(got.Issues) != 1 || got.Issues[0].Resource != availability.ResourceCoach {
		t.Fatalf("got %+v, want a single coach issue", got)
	}
	if got.Issues[0].Conflict == nil || got.Issues[0].Conflict.StartTime != "10:00" {
		t.Errorf("Conflict = %+v", got.Issues[0].Conflict)
	}
}

func TestCheckAllEquipmentCapacity(t *testing.T) {
	f := newFixture()
	racket := f.catalog.AddEquipment(catalog.Equipment{Name: "Racket", TotalQuantity: 2, IsActive: true})
	f.book(reservations.Reservation{
		CourtID:   uuid.New(),
		StartTime: "10:00", EndTime: "11:00",
		Equipment: reservations.EquipmentLines{{EquipmentID: racket.ID, Quantity: 1}},
	})

	got, err := f.checker.CheckAll(context.Background(), availability.Request{
		CourtID:   f.court,
		Date:      monday,
		StartTime: "10:30", EndTime: "11:30",
		Equipment: []availability.EquipmentRequest{{EquipmentID: racket.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Available {
		t.Fatal("expected equipment to be unavailable")
	}
	items := got.Issues[0].UnavailableItems
	want := availability.UnavailableItem{
		EquipmentID: racket.ID, Name: "Racket", Reason: availability.ReasonInsufficient, Requested: 2, Available: 1,
	}
	if len(items) != 1 || items[0] != want {
		t.Errorf("UnavailableItems = %+v, want [%+v]", items, want)
	}

	// One unit still fits, and a non-overlapping window has both.
	got, _ = f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, Date: monday, StartTime: "10:30", EndTime: "11:30",
		Equipment: []availability.EquipmentRequest{{EquipmentID: racket.ID, Quantity: 1}},
	})
	if !got.Available {
		t.Errorf("one unit should be available: %+v", got.Issues)
	}
	got, _ = f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, Date: monday, StartTime: "11:00", EndTime: "12:00",
		Equipment: []availability.EquipmentRequest{{EquipmentID: racket.ID, Quantity: 2}},
	})
	if !got.Available {
		t.Errorf("touching window should have full stock: %+v", got.Issues)
	}
}

func TestCheckAllEquipmentPerItemReasons(t *testing.T) {
	f := newFixture()
	retired := f.catalog.AddEquipment(catalog.Equipment{Name: "Old Shoes", TotalQuantity: 5})
	missing := uuid.New()

	got, err := f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, Date: monday, StartTime: "10:00", EndTime: "11:00",
		Equipment: []availability.EquipmentRequest{
			{EquipmentID: missing, Quantity: 1},
			{EquipmentID: retired.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	items := got.Issues[0].UnavailableItems
	if len(items) != 2 || items[0].Reason != availability.ReasonNotFound || items[1].Reason != availability.ReasonInactive {
		t.Errorf("UnavailableItems = %+v", items)
	}
}

func TestCheckAllMergesRepeatedItems(t *testing.T) {
	f := newFixture()
	shoes := f.catalog.AddEquipment(catalog.Equipment{Name: "Shoes", TotalQuantity: 3, IsActive: true})

	got, _ := f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, Date: monday, StartTime: "10:00", EndTime: "11:00",
		Equipment: []availability.EquipmentRequest{
			{EquipmentID: shoes.ID, Quantity: 2},
			{EquipmentID: shoes.ID, Quantity: 2},
		},
	})
	if got.Available {
		t.Fatal("4 units of a 3-unit item should not be available")
	}
	if item := got.Issues[0].UnavailableItems[0]; item.Requested != 4 || item.Available != 3 {
		t.Errorf("item = %+v", item)
	}
}

func TestCheckAllReportsEveryDimension(t *testing.T) {
	f := newFixture()
	coachID := uuid.New()
	ball := f.catalog.AddEquipment(catalog.Equipment{Name: "Shuttles", TotalQuantity: 1, IsActive: true})
	f.book(reservations.Reservation{
		CoachID:   &coachID,
		StartTime: "10:00", EndTime: "11:00",
		Equipment: reservations.EquipmentLines{{EquipmentID: ball.ID, Quantity: 1}},
	})

	got, err := f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, CoachID: &coachID, Date: monday, StartTime: "10:00", EndTime: "11:00",
		Equipment: []availability.EquipmentRequest{{EquipmentID: ball.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	var resources []availability.Resource
	for _, issue := range got.Issues {
		resources = append(resources, issue.Resource)
	}
	want := []availability.Resource{availability.ResourceCourt, availability.ResourceCoach, availability.ResourceEquipment}
	if !slices.Equal(resources, want) {
		t.Errorf("issue order = %v, want %v", resources, want)
	}
}

func TestCheckAllValidation(t *testing.T) {
	f := newFixture()
	tests := []struct {
		name string
		req  availability.Request
	}{
		{"malformed time", availability.Request{CourtID: f.court, StartTime: "10-00", EndTime: "11:00"}},
		{"end before start", availability.Request{CourtID: f.court, StartTime: "11:00", EndTime: "10:00"}},
		{"missing court", availability.Request{StartTime: "10:00", EndTime: "11:00"}},
		{"zero quantity", availability.Request{
			CourtID: f.court, StartTime: "10:00", EndTime: "11:00",
			Equipment: []availability.EquipmentRequest{{EquipmentID: uuid.New(), Quantity: 0}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Date = monday
			_, err := f.checker.CheckAll(context.Background(), tt.req)
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

type failingLookup struct{}

func (failingLookup) GetEquipment(context.Context, uuid.UUID) (*catalog.Equipment, error) {
	return nil, errors.New("catalog down")
}

func TestCheckAllSurfacesLookupFailure(t *testing.T) {
	checker := availability.NewChecker(reservationstest.NewMemory(), failingLookup{})
	_, err := checker.CheckAll(context.Background(), availability.Request{
		CourtID: uuid.New(), Date: monday, StartTime: "10:00", EndTime: "11:00",
		Equipment: []availability.EquipmentRequest{{EquipmentID: uuid.New(), Quantity: 1}},
	})
	if err == nil || errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("error = %v, want infrastructure failure", err)
	}
}

func TestWeeklyHoursPolicy(t *testing.T) {
	f := newFixture()
	coach := f.catalog.AddCoach(catalog.Coach{Name: "Sarah", IsActive: true, Availability: catalog.DefaultWeeklySchedule()})
	f.checker.SetCoachPolicy(availability.WeeklyHoursPolicy{Coaches: f.catalog})

	tests := []struct {
		start, end string
		available  bool
	}{
		{"07:00", "08:00", true},
		{"20:00", "21:00", true},
		{"20:30", "21:30", false},
		{"05:00", "06:00", false},
	}
	for _, tt := range tests {
		got, err := f.checker.CheckAll(context.Background(), availability.Request{
			CourtID: f.court, CoachID: &coach.ID, Date: monday, StartTime: tt.start, EndTime: tt.end,
		})
		if err != nil {
			t.Fatal(err)
		}
		if got.Available != tt.available {
			t.Errorf("%s-%s: Available = %v, want %v", tt.start, tt.end, got.Available, tt.available)
		}
	}

	// The default policy ignores working hours.
	f.checker.SetCoachPolicy(nil)
	got, _ := f.checker.CheckAll(context.Background(), availability.Request{
		CourtID: f.court, CoachID: &coach.ID, Date: monday, StartTime: "05:00", EndTime: "06:00",
	})
	if !got.Available {
		t.Error("overlap-only policy should not consult working hours")
	}
}

func TestSlots(t *testing.T) {
	f := newFixture()
	f.book(reservations.Reservation{StartTime: "07:30", EndTime: "08:30"})
	f.book(reservations.Reservation{StartTime: "12:00", EndTime: "13:00", Status: reservations.StatusCancelled})

	seq, err := f.checker.Slots(context.Background(), f.court, monday, 60)
	if err != nil {
		t.Fatal(err)
	}
	slots := slices.Collect(seq)
	if len(slots) != 16 {
		t.Fatalf("got %d slots, want 16", len(slots))
	}
	if slots[0].StartTime != "06:00" || slots[15].EndTime != "22:00" {
		t.Errorf("grid bounds = %s..%s", slots[0].StartTime, slots[15].EndTime)
	}
	for _, s := range slots {
		wantFree := s.StartTime != "07:00" && s.StartTime != "08:00"
		if s.Available != wantFree {
			t.Errorf("slot %s available = %v, want %v", s.StartTime, s.Available, wantFree)
		}
	}

	// Restartable.
	if again := slices.Collect(seq); !slices.Equal(again, slots) {
		t.Error("second iteration differs")
	}
}

func TestSlotsDropsPartialTrailingSlot(t *testing.T) {
	f := newFixture()
	if err := f.checker.SetOperatingHours("06:00", "10:00"); err != nil {
		t.Fatal(err)
	}
	seq, err := f.checker.Slots(context.Background(), f.court, monday, 90)
	if err != nil {
		t.Fatal(err)
	}
	slots := slices.Collect(seq)
	if len(slots) != 2 || slots[1].EndTime != "09:00" {
		t.Errorf("slots = %+v", slots)
	}

	if _, err := f.checker.Slots(context.Background(), f.court, monday, 0); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("zero duration error = %v", err)
	}
}

func TestGridStopsEarly(t *testing.T) {
	n := 0
	for range availability.Grid(timeslot.Window{Start: 0, End: 24 * 60}, 30, nil) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iterated %d times", n)
	}
}
