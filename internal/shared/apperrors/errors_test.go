package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: Validation("bad date"), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("court", "c1"), want: http.StatusNotFound},
		{name: "inactive", err: Inactive("coach", "k1"), want: http.StatusUnprocessableEntity},
		{name: "conflict", err: Conflict(nil), want: http.StatusConflict},
		{name: "forbidden", err: Forbidden("not your reservation"), want: http.StatusForbidden},
		{name: "already cancelled", err: New(KindAlreadyCancelled, "already cancelled"), want: http.StatusConflict},
		{name: "wrapped", err: fmt.Errorf("create: %w", NotFound("court", "c1")), want: http.StatusNotFound},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("court", "c1"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected wrapped not_found error to match ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("not_found error should not match ErrValidation")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindInternal, cause, "failed to load reservations")
	if !errors.Is(err, cause) {
		t.Error("expected Wrap to keep the cause in the chain")
	}
	if err.Error() != "failed to load reservations: connection reset" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIssuesOf(t *testing.T) {
	issues := map[string]string{"court": "booked"}
	err := fmt.Errorf("check: %w", Conflict(issues))
	got, ok := IssuesOf(err).(map[string]string)
	if !ok || got["court"] != "booked" {
		t.Errorf("IssuesOf() = %v, want %v", IssuesOf(err), issues)
	}
	if IssuesOf(errors.New("x")) != nil {
		t.Error("IssuesOf() on a plain error should be nil")
	}
}
