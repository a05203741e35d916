package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dgreenbaum/luach-api/internal/config"
	"github.com/dgreenbaum/luach-api/internal/database"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// testEnv sets up a complete test environment with database, config, and router
type testEnv struct {
	db     *database.DB
	cfg    *config.Config
	router http.Handler
}

// setupTest creates a fresh test environment.
// Requests are served through the real router so path parameters resolve.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	// Create in-memory database
	dbCfg := database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	db, err := database.Open(dbCfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	cfg := &config.Config{
		Port:         8080,
		Env:          config.EnvDevelopment,
		DatabasePath: ":memory:",
		Diaspora:     true,
		LogLevel:     "error",
		LogFormat:    "text",
	}

	handlers := NewHandlers(db, cfg, logger)
	router := SetupRoutes(handlers, cfg, logger)

	return &testEnv{
		db:     db,
		cfg:    cfg,
		router: router,
	}
}

// get serves a GET request through the router and returns the recorder.
func (env *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// parseResponse parses a JSON response body.
func parseResponse(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v, body: %s", err, rr.Body.String())
	}
}

// =============================================================================
// HEALTH AND CONVERSION TESTS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	parseResponse(t, rr, &resp)

	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Data["status"] != "healthy" {
		t.Errorf("status = %q, want %q", resp.Data["status"], "healthy")
	}
}

func TestConvertCivilDate(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/hebrew/2024-10-12")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Success bool       `json:"success"`
		Data    Conversion `json:"data"`
	}
	parseResponse(t, rr, &resp)

	want := Conversion{
		Civil:       "2024-10-12",
		Weekday:     "Saturday",
		HebrewYear:  5785,
		HebrewMonth: 1,
		HebrewDay:   10,
		MonthName:   "Tishrei",
		Display:     "10 Tishrei 5785",
	}
	if resp.Data != want {
		t.Errorf("Conversion = %+v, want %+v", resp.Data, want)
	}
}

func TestConvertCivilDate_BadFormat(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/hebrew/12-10-2024")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestConvertHebrewDate(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/civil/5785/1/10")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Success bool       `json:"success"`
		Data    Conversion `json:"data"`
	}
	parseResponse(t, rr, &resp)

	if resp.Data.Civil != "2024-10-12" {
		t.Errorf("Civil = %q, want %q", resp.Data.Civil, "2024-10-12")
	}
}

func TestConvertHebrewDate_OutOfRange(t *testing.T) {
	env := setupTest(t)

	// Month 13 does not exist in the common year 5785
	rr := env.get(t, "/api/v1/civil/5785/13/1")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// =============================================================================
// YEAR ENDPOINT TESTS
// =============================================================================

func TestGetYearProfile(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/years/5784")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Success bool     `json:"success"`
		Data    YearInfo `json:"data"`
	}
	parseResponse(t, rr, &resp)

	if !resp.Data.Leap {
		t.Error("5784 should be a leap year")
	}
	if resp.Data.Length != 383 {
		t.Errorf("Length = %d, want 383", resp.Data.Length)
	}
	if len(resp.Data.MonthNames) != 13 {
		t.Errorf("MonthNames has %d entries, want 13", len(resp.Data.MonthNames))
	}
}

func TestGetYearEvents(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/years/5785/events")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			HebrewYear int         `json:"hebrew_year"`
			Observance string      `json:"observance"`
			Events     []DayEvents `json:"events"`
		} `json:"data"`
	}
	parseResponse(t, rr, &resp)

	if resp.Data.Observance != "diaspora" {
		t.Errorf("Observance = %q, want %q (config default)", resp.Data.Observance, "diaspora")
	}

	var yomKippur []string
	for _, de := range resp.Data.Events {
		if de.Date == "2024-10-12" {
			yomKippur = de.Labels
		}
	}
	if len(yomKippur) == 0 || yomKippur[0] != "Yom Kippur" {
		t.Errorf("labels on 2024-10-12 = %v, want Yom Kippur first", yomKippur)
	}

	// The computed table is now stored for the next request.
	if _, err := env.db.GetYearEvents(context.Background(), 5785, true); err != nil {
		t.Errorf("year not stored after request: %v", err)
	}
}

func TestGetYearEvents_IsraelObservance(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/years/5785/events?observance=israel")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Events []DayEvents `json:"events"`
		} `json:"data"`
	}
	parseResponse(t, rr, &resp)

	for _, de := range resp.Data.Events {
		for _, l := range de.Labels {
			if l == "Pesach 8" {
				t.Errorf("israel observance includes Pesach 8 on %s", de.Date)
			}
		}
	}
}

func TestGetYearEvents_BadObservance(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/years/5785/events?observance=mars")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetYearEvents_InvalidYear(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/years/0/events")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetYearEventsICS(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/years/5785/events.ics")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q, want text/calendar", ct)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("response is not an iCalendar document")
	}
	if !strings.Contains(body, "SUMMARY:Yom Kippur") {
		t.Error("feed missing Yom Kippur event")
	}
}

func TestGetParshaSchedule(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/years/5785/parsha")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Portions []PortionEntry `json:"portions"`
		} `json:"data"`
	}
	parseResponse(t, rr, &resp)

	var bereishis string
	for _, p := range resp.Data.Portions {
		if p.Portion == "Bereishis" {
			bereishis = p.Date
		}
	}
	if bereishis != "2024-10-26" {
		t.Errorf("Bereishis = %q, want 2024-10-26", bereishis)
	}

	// Sorted by date
	for i := 1; i < len(resp.Data.Portions); i++ {
		if resp.Data.Portions[i].Date < resp.Data.Portions[i-1].Date {
			t.Errorf("portions out of order at %d: %s after %s",
				i, resp.Data.Portions[i].Date, resp.Data.Portions[i-1].Date)
		}
	}
}

// =============================================================================
// GRID AND TODAY TESTS
// =============================================================================

func TestGetMonthGrid(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/grid/2024/10")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Title string `json:"title"`
			Days  map[string]struct {
				HebrewLabel string `json:"hebrew_label"`
				Parsha      string `json:"parsha"`
				Events      string `json:"events"`
			} `json:"days"`
		} `json:"data"`
	}
	parseResponse(t, rr, &resp)

	if resp.Data.Title != "Elul 5784 / Tishrei 5785" {
		t.Errorf("Title = %q, want %q", resp.Data.Title, "Elul 5784 / Tishrei 5785")
	}
	if got := resp.Data.Days["3"].HebrewLabel; got != "1 Tishrei" {
		t.Errorf("day 3 label = %q, want %q", got, "1 Tishrei")
	}
	if got := resp.Data.Days["26"].Parsha; got != "Bereishis" {
		t.Errorf("day 26 parsha = %q, want %q", got, "Bereishis")
	}
}

func TestGetMonthGrid_InvalidMonth(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/grid/2024/13")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetToday(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/today")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Success bool      `json:"success"`
		Data    TodayInfo `json:"data"`
	}
	parseResponse(t, rr, &resp)

	if resp.Data.HebrewYear < 5700 {
		t.Errorf("HebrewYear = %d, implausible", resp.Data.HebrewYear)
	}
	if resp.Data.Display == "" {
		t.Error("Display is empty")
	}
}

// =============================================================================
// MIDDLEWARE TESTS
// =============================================================================

func TestRequestIDHeader(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/health")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestAuthMiddleware_EnforcedWhenKeySet(t *testing.T) {
	env := setupTest(t)
	env.cfg.APIKey = "test-key-123"

	// Missing key
	rr := env.get(t, "/api/v1/years/5785/events")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing key: Status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	// Wrong key
	req := httptest.NewRequest(http.MethodGet, "/api/v1/years/5785/events", nil)
	req.Header.Set("X-API-Key", "wrong")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: Status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	// Correct key
	req = httptest.NewRequest(http.MethodGet, "/api/v1/years/5785/events", nil)
	req.Header.Set("X-API-Key", "test-key-123")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("correct key: Status = %d, want %d", rr.Code, http.StatusOK)
	}

	// Health stays public
	if rr := env.get(t, "/health"); rr.Code != http.StatusOK {
		t.Errorf("health with auth enabled: Status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/today", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}
