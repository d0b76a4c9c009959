package bookings_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtly/internal/bookings"
	"courtly/internal/reservations"
	"courtly/internal/shared/config"
	"courtly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func setupBookingEngine(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	engine := gin.New()
	bookings.SetupBookingRoutes(engine.Group("/api/v1"), bookings.NewController(f.service), cfg)
	return engine
}

func bearer(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"email":   "player@example.com",
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + signed
}

type apiResponse struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
}

func do(t *testing.T, engine *gin.Engine, method, path, auth string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestCreateBookingEndpoint(t *testing.T) {
	f := newFixture()
	engine := setupBookingEngine(f)
	userID := uuid.New()
	body := map[string]interface{}{
		"court_id":   f.court.ID.String(),
		"date":       "2025-03-10",
		"start_time": "10:00",
		"end_time":   "11:00",
		"equipment":  []map[string]interface{}{{"equipment_id": f.racket.ID.String(), "quantity": 1}},
	}

	w, resp := do(t, engine, http.MethodPost, "/api/v1/bookings", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create status = %d, want 401", w.Code)
	}

	w, resp = do(t, engine, http.MethodPost, "/api/v1/bookings", bearer(t, userID, middleware.RoleUser), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var created reservations.Reservation
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.UserID != userID || created.Status != reservations.StatusConfirmed || created.Pricing.Total != 25 {
		t.Errorf("created = %+v", created)
	}

	w, resp = do(t, engine, http.MethodPost, "/api/v1/bookings", bearer(t, uuid.New(), middleware.RoleUser), body)
	if w.Code != http.StatusConflict {
		t.Fatalf("overlapping create status = %d, want 409", w.Code)
	}
	var issues []map[string]interface{}
	if err := json.Unmarshal(resp.Errors, &issues); err != nil || len(issues) != 1 || issues[0]["resource"] != "court" {
		t.Errorf("conflict errors = %s", resp.Errors)
	}
}

func TestBookingBodyValidation(t *testing.T) {
	f := newFixture()
	engine := setupBookingEngine(f)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing court", map[string]interface{}{"date": "2025-03-10", "start_time": "10:00", "end_time": "11:00"}},
		{"bad time", map[string]interface{}{"court_id": f.court.ID.String(), "date": "2025-03-10", "start_time": "10am", "end_time": "11:00"}},
		{"bad date", map[string]interface{}{"court_id": f.court.ID.String(), "date": "10/03/2025", "start_time": "10:00", "end_time": "11:00"}},
		{"zero quantity", map[string]interface{}{
			"court_id": f.court.ID.String(), "date": "2025-03-10", "start_time": "10:00", "end_time": "11:00",
			"equipment": []map[string]interface{}{{"equipment_id": f.racket.ID.String(), "quantity": 0}},
		}},
		{"end before start", map[string]interface{}{"court_id": f.court.ID.String(), "date": "2025-03-10", "start_time": "11:00", "end_time": "10:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, engine, http.MethodPost, "/api/v1/bookings/check-availability", "", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestCalculatePriceEndpoint(t *testing.T) {
	f := newFixture()
	engine := setupBookingEngine(f)
	body := map[string]interface{}{
		"court_id":   f.court.ID.String(),
		"coach_id":   f.coach.ID.String(),
		"date":       "2025-03-10",
		"start_time": "10:00",
		"end_time":   "12:00",
	}

	w, resp := do(t, engine, http.MethodPost, "/api/v1/bookings/calculate-price", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var breakdown struct {
		CourtFee float64 `json:"court_fee"`
		CoachFee float64 `json:"coach_fee"`
		Total    float64 `json:"total"`
	}
	if err := json.Unmarshal(resp.Data, &breakdown); err != nil {
		t.Fatal(err)
	}
	if breakdown.CourtFee != 40 || breakdown.CoachFee != 100 || breakdown.Total != 140 {
		t.Errorf("breakdown = %+v", breakdown)
	}
}

func TestListSlotsEndpoint(t *testing.T) {
	f := newFixture()
	engine := setupBookingEngine(f)

	w, resp := do(t, engine, http.MethodGet, "/api/v1/bookings/slots/"+f.court.ID.String()+"/2025-03-10?duration=120", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var grid bookings.SlotsResponse
	if err := json.Unmarshal(resp.Data, &grid); err != nil {
		t.Fatal(err)
	}
	if grid.DurationMinutes != 120 || len(grid.Slots) != 8 || grid.Date != "2025-03-10" {
		t.Errorf("grid = %+v", grid)
	}

	w, _ = do(t, engine, http.MethodGet, "/api/v1/bookings/slots/"+f.court.ID.String()+"/2025-03-10?duration=5", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("tiny duration status = %d, want 400", w.Code)
	}
	w, _ = do(t, engine, http.MethodGet, "/api/v1/bookings/slots/not-a-uuid/2025-03-10", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad court id status = %d, want 400", w.Code)
	}
}

func TestCancelAndAdminEndpoints(t *testing.T) {
	f := newFixture()
	engine := setupBookingEngine(f)
	owner := uuid.New()
	ownerAuth := bearer(t, owner, middleware.RoleUser)
	adminAuth := bearer(t, uuid.New(), middleware.RoleAdmin)

	res, err := f.service.CreateBooking(context.Background(), bookings.Actor{UserID: owner}, f.request("10:00", "11:00"))
	if err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}

	w, _ := do(t, engine, http.MethodPost, "/api/v1/admin/bookings/"+res.ID.String()+"/complete", ownerAuth, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("player complete status = %d, want 403", w.Code)
	}

	w, _ = do(t, engine, http.MethodGet, "/api/v1/bookings/"+res.ID.String(), bearer(t, uuid.New(), middleware.RoleUser), nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("stranger get status = %d, want 403", w.Code)
	}

	w, _ = do(t, engine, http.MethodPost, "/api/v1/bookings/"+res.ID.String()+"/cancel", ownerAuth, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel status = %d, body %s", w.Code, w.Body.String())
	}
	w, _ = do(t, engine, http.MethodPost, "/api/v1/bookings/"+res.ID.String()+"/cancel", ownerAuth, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second cancel status = %d, want 409", w.Code)
	}

	w, resp := do(t, engine, http.MethodGet, "/api/v1/admin/bookings?status=cancelled", adminAuth, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list status = %d, body %s", w.Code, w.Body.String())
	}
	var list bookings.BookingListResponse
	if err := json.Unmarshal(resp.Data, &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Limit != 10 || len(list.Bookings) != 1 {
		t.Errorf("list = %+v", list)
	}

	w, resp = do(t, engine, http.MethodGet, "/api/v1/bookings/my", ownerAuth, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("my bookings status = %d", w.Code)
	}
	if err := json.Unmarshal(resp.Data, &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Bookings[0].ID != res.ID {
		t.Errorf("my bookings = %+v", list)
	}
}
