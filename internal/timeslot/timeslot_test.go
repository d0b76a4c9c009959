package timeslot

import (
	"errors"
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "06:30", want: 390},
		{name: "single digit hour", input: "9:15", want: 555},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "missing colon", input: "0930", wantErr: true},
		{name: "non numeric", input: "ab:cd", wantErr: true},
		{name: "minutes out of range", input: "10:75", wantErr: true},
		{name: "past end of day", input: "24:30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "short minutes", input: "10:5", wantErr: true},
		{name: "negative hour", input: "-0:30", wantErr: true},
		{name: "signed hour", input: "+9:00", wantErr: true},
		{name: "signed minutes", input: "09:+5", wantErr: true},
		{name: "three digit hour", input: "009:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinutes(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeFormat) {
					t.Fatalf("ToMinutes(%q) error = %v, want ErrInvalidTimeFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToMinutes(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		startA, endA string
		startB, endB string
		want         bool
	}{
		{name: "touching is not overlap", startA: "09:00", endA: "10:00", startB: "10:00", endB: "11:00", want: false},
		{name: "one minute into next", startA: "09:00", endA: "10:01", startB: "10:00", endB: "11:00", want: true},
		{name: "contained", startA: "09:00", endA: "12:00", startB: "10:00", endB: "11:00", want: true},
		{name: "identical", startA: "18:00", endA: "19:00", startB: "18:00", endB: "19:00", want: true},
		{name: "disjoint", startA: "06:00", endA: "07:00", startB: "20:00", endB: "21:00", want: false},
		{name: "reverse touching", startA: "11:00", endA: "12:00", startB: "10:00", endB: "11:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Overlaps(tt.startA, tt.endA, tt.startB, tt.endB)
			if err != nil {
				t.Fatalf("Overlaps() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v", tt.startA, tt.endA, tt.startB, tt.endB, got, tt.want)
			}
		})
	}
}

func TestOverlapsRejectsMalformed(t *testing.T) {
	if _, err := Overlaps("9am", "10:00", "10:00", "11:00"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("Overlaps() error = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestDurationHours(t *testing.T) {
	got, err := DurationHours("18:00", "19:30")
	if err != nil {
		t.Fatalf("DurationHours() unexpected error: %v", err)
	}
	if got != 1.5 {
		t.Errorf("DurationHours() = %v, want 1.5", got)
	}

	got, err = DurationHours("19:00", "18:00")
	if err != nil {
		t.Fatalf("DurationHours() unexpected error: %v", err)
	}
	if got != -1 {
		t.Errorf("DurationHours() = %v, want -1 for a reversed interval", got)
	}
}

func TestParseWindow(t *testing.T) {
	if _, err := ParseWindow("10:00", "10:00"); err == nil {
		t.Error("ParseWindow() expected error for empty window")
	}
	w, err := ParseWindow("09:00", "21:00")
	if err != nil {
		t.Fatalf("ParseWindow() unexpected error: %v", err)
	}
	inner, _ := ParseWindow("18:00", "19:00")
	if !w.Contains(inner) {
		t.Errorf("%v should contain %v", w, inner)
	}
	late, _ := ParseWindow("20:30", "21:30")
	if w.Contains(late) {
		t.Errorf("%v should not contain %v", w, late)
	}
}

func TestDayHelpers(t *testing.T) {
	ts := time.Date(2025, 3, 8, 17, 45, 0, 0, time.UTC)
	day := Day(ts)
	if day.Hour() != 0 || day.Minute() != 0 || day.Day() != 8 {
		t.Errorf("Day() = %v, want midnight of the 8th", day)
	}

	parsed, err := ParseDate("2025-03-08")
	if err != nil {
		t.Fatalf("ParseDate() unexpected error: %v", err)
	}
	if !SameDay(parsed, ts) {
		t.Errorf("SameDay(%v, %v) = false, want true", parsed, ts)
	}
	if _, err := ParseDate("08/03/2025"); err == nil {
		t.Error("ParseDate() expected error for wrong layout")
	}
	if got := Format(1110); got != "18:30" {
		t.Errorf("Format(1110) = %s, want 18:30", got)
	}
}
