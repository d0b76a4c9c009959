package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	return NewWithLevel(level, &buf), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var rec map[string]interface{}
	if err := json.Unmarshal(lines[len(lines)-1], &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	return rec
}

func TestGetLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := getLogLevel(in); got != want {
			t.Errorf("getLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogBookingCreated(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.LogBookingCreated(context.Background(), "b1", "c1", "u1", 40)

	rec := lastRecord(t, buf)
	if rec["msg"] != "Booking Created" || rec["booking_id"] != "b1" || rec["court_id"] != "c1" || rec["total"] != 40.0 {
		t.Errorf("record = %v", rec)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")
	l.LogWaitlistNotified(context.Background(), "e1", "c1")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %s", buf.String())
	}
	l.WithError(errors.New("boom")).Warn("cache down")
	if rec := lastRecord(t, buf); rec["error"] != "boom" {
		t.Errorf("record = %v", rec)
	}
}

func TestRequestLogger(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	r := gin.New()
	r.Use(RequestLogger(l))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))

	rec := lastRecord(t, buf)
	if rec["path"] != "/ping" || rec["status"] != float64(http.StatusTeapot) || rec["query"] != "x=1" {
		t.Errorf("record = %v", rec)
	}
}
