package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgreenbaum/luach-api/internal/config"
	"github.com/dgreenbaum/luach-api/internal/database"
	"github.com/dgreenbaum/luach-api/internal/feed"
	"github.com/dgreenbaum/luach-api/internal/hebcal"
)

const civilDateFormat = "2006-01-02"

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// =============================================================================
// Response shapes
// =============================================================================

// Conversion is the response body for date conversion endpoints.
type Conversion struct {
	Civil       string `json:"civil"`   // YYYY-MM-DD
	Weekday     string `json:"weekday"` // Sunday..Saturday
	HebrewYear  int    `json:"hebrew_year"`
	HebrewMonth int    `json:"hebrew_month"`
	HebrewDay   int    `json:"hebrew_day"`
	MonthName   string `json:"month_name"`
	Display     string `json:"display"` // e.g. "10 Tishrei 5785"
}

// YearInfo is the response body for the year profile endpoint.
type YearInfo struct {
	HebrewYear   int      `json:"hebrew_year"`
	Leap         bool     `json:"leap"`
	Length       int      `json:"length"`
	RoshHashanah string   `json:"rosh_hashanah"` // YYYY-MM-DD
	MonthNames   []string `json:"month_names"`
	MonthLengths []int    `json:"month_lengths"`
}

// DayEvents is one date's entry in the events endpoint response.
type DayEvents struct {
	Date   string   `json:"date"` // YYYY-MM-DD
	Labels []string `json:"labels"`
}

// PortionEntry is one week's entry in the Torah reading schedule response.
type PortionEntry struct {
	Portion string `json:"portion"`
	Date    string `json:"date"` // YYYY-MM-DD
}

// TodayInfo is the response body for the today endpoint.
type TodayInfo struct {
	Conversion
	Events []string `json:"events"`
	Parsha string   `json:"parsha,omitempty"` // upcoming Shabbat portion
}

func newConversion(civil time.Time, hd hebcal.HebrewDate) Conversion {
	return Conversion{
		Civil:       civil.Format(civilDateFormat),
		Weekday:     civil.Weekday().String(),
		HebrewYear:  hd.Year,
		HebrewMonth: hd.Month,
		HebrewDay:   hd.Day,
		MonthName:   hd.MonthName,
		Display:     hd.String(),
	}
}

// =============================================================================
// Handlers
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// ConvertCivilDate handles GET /api/v1/hebrew/{date}
func (h *Handlers) ConvertCivilDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")

	civil, err := time.ParseInLocation(civilDateFormat, dateStr, time.UTC)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	hd, err := hebcal.FromGregorian(civil)
	if err != nil {
		if hebcal.IsOutOfRange(err) {
			WriteBadRequest(w, fmt.Sprintf("Date out of supported range: %s", dateStr))
			return
		}
		h.logger.Error("civil conversion failed",
			slog.String("date", dateStr),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to convert date")
		return
	}

	WriteSuccess(w, newConversion(civil, hd))
}

// ConvertHebrewDate handles GET /api/v1/civil/{year}/{month}/{day}
func (h *Handlers) ConvertHebrewDate(w http.ResponseWriter, r *http.Request) {
	year, err1 := strconv.Atoi(chi.URLParam(r, "year"))
	month, err2 := strconv.Atoi(chi.URLParam(r, "month"))
	day, err3 := strconv.Atoi(chi.URLParam(r, "day"))
	if err1 != nil || err2 != nil || err3 != nil {
		WriteBadRequest(w, "Year, month and day must be integers")
		return
	}

	civil, err := hebcal.ToGregorian(year, month, day)
	if err != nil {
		if hebcal.IsOutOfRange(err) {
			WriteBadRequest(w, fmt.Sprintf("Invalid Hebrew date: %d-%d-%d", year, month, day))
			return
		}
		h.logger.Error("hebrew conversion failed",
			slog.Int("year", year), slog.Int("month", month), slog.Int("day", day),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to convert date")
		return
	}

	hd, err := hebcal.FromGregorian(civil)
	if err != nil {
		WriteInternalError(w, "Failed to convert date")
		return
	}

	WriteSuccess(w, newConversion(civil, hd))
}

// GetYearProfile handles GET /api/v1/years/{year}
func (h *Handlers) GetYearProfile(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}

	profile, err := hebcal.Profile(year)
	if err != nil {
		if hebcal.IsOutOfRange(err) {
			WriteBadRequest(w, fmt.Sprintf("Invalid Hebrew year: %d", year))
			return
		}
		WriteInternalError(w, "Failed to compute year profile")
		return
	}

	WriteSuccess(w, YearInfo{
		HebrewYear:   profile.Year,
		Leap:         profile.Leap,
		Length:       profile.Length,
		RoshHashanah: hebcal.RoshHashanah(year).Format(civilDateFormat),
		MonthNames:   profile.MonthNames,
		MonthLengths: profile.MonthLengths,
	})
}

// GetYearEvents handles GET /api/v1/years/{year}/events?observance=diaspora|israel
func (h *Handlers) GetYearEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}
	diaspora, ok := h.observance(r)
	if !ok {
		WriteBadRequest(w, "Observance must be diaspora or israel")
		return
	}

	events, err := h.yearEvents(ctx, year, diaspora)
	if err != nil {
		if hebcal.IsOutOfRange(err) {
			WriteBadRequest(w, fmt.Sprintf("Invalid Hebrew year: %d", year))
			return
		}
		h.logger.Error("year events failed",
			slog.Int("year", year), slog.Any("error", err))
		WriteInternalError(w, "Failed to compute year events")
		return
	}

	WriteSuccess(w, map[string]any{
		"hebrew_year": year,
		"observance":  observanceName(diaspora),
		"events":      sortedEvents(events),
	})
}

// GetYearEventsICS handles GET /api/v1/years/{year}/events.ics
func (h *Handlers) GetYearEventsICS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}
	diaspora, ok := h.observance(r)
	if !ok {
		WriteBadRequest(w, "Observance must be diaspora or israel")
		return
	}

	events, err := h.yearEvents(ctx, year, diaspora)
	if err != nil {
		if hebcal.IsOutOfRange(err) {
			WriteBadRequest(w, fmt.Sprintf("Invalid Hebrew year: %d", year))
			return
		}
		h.logger.Error("year events failed",
			slog.Int("year", year), slog.Any("error", err))
		WriteInternalError(w, "Failed to compute year events")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("hebrew-%d.ics", year)))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, feed.YearCalendar(year, diaspora, events))
}

// GetParshaSchedule handles GET /api/v1/years/{year}/parsha
func (h *Handlers) GetParshaSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}

	schedule, err := h.parshaSchedule(ctx, year)
	if err != nil {
		if hebcal.IsOutOfRange(err) {
			WriteBadRequest(w, fmt.Sprintf("Invalid Hebrew year: %d", year))
			return
		}
		h.logger.Error("parsha schedule failed",
			slog.Int("year", year), slog.Any("error", err))
		WriteInternalError(w, "Failed to compute reading schedule")
		return
	}

	WriteSuccess(w, map[string]any{
		"hebrew_year": year,
		"portions":    sortedPortions(schedule),
	})
}

// GetMonthGrid handles GET /api/v1/grid/{year}/{month}
func (h *Handlers) GetMonthGrid(w http.ResponseWriter, r *http.Request) {
	year, err1 := strconv.Atoi(chi.URLParam(r, "year"))
	month, err2 := strconv.Atoi(chi.URLParam(r, "month"))
	if err1 != nil || err2 != nil {
		WriteBadRequest(w, "Year and month must be integers")
		return
	}
	diaspora, ok := h.observance(r)
	if !ok {
		WriteBadRequest(w, "Observance must be diaspora or israel")
		return
	}

	grid, err := hebcal.MonthGrid(year, month, diaspora)
	if err != nil {
		if hebcal.IsOutOfRange(err) {
			WriteBadRequest(w, fmt.Sprintf("Invalid month: %d-%d", year, month))
			return
		}
		h.logger.Error("month grid failed",
			slog.Int("year", year), slog.Int("month", month), slog.Any("error", err))
		WriteInternalError(w, "Failed to compute month grid")
		return
	}

	title, err := hebcal.MonthTitle(year, month)
	if err != nil {
		WriteInternalError(w, "Failed to compute month title")
		return
	}

	WriteSuccess(w, map[string]any{
		"year":       year,
		"month":      month,
		"title":      title,
		"observance": observanceName(diaspora),
		"days":       grid,
	})
}

// GetToday handles GET /api/v1/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	diaspora, ok := h.observance(r)
	if !ok {
		WriteBadRequest(w, "Observance must be diaspora or israel")
		return
	}

	hd, err := hebcal.FromGregorian(today)
	if err != nil {
		h.logger.Error("today conversion failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to convert date")
		return
	}

	info := TodayInfo{Conversion: newConversion(today, hd)}

	if events, err := h.yearEvents(ctx, hd.Year, diaspora); err == nil {
		info.Events = events[today]
	} else {
		h.logger.Warn("today events unavailable",
			slog.Int("year", hd.Year), slog.Any("error", err))
	}

	if schedule, err := h.parshaSchedule(ctx, hd.Year); err == nil {
		info.Parsha = upcomingPortion(schedule, today)
	}

	WriteSuccess(w, info)
}

// =============================================================================
// Result store plumbing
// =============================================================================

// yearEvents returns the event table for a year, serving from the store when
// present and computing (then storing) it otherwise. A store failure never
// fails the request: the table is always recomputable.
func (h *Handlers) yearEvents(ctx context.Context, year int, diaspora bool) (map[time.Time][]string, error) {
	events, err := h.db.GetYearEvents(ctx, year, diaspora)
	if err == nil {
		return events, nil
	}
	if !database.IsNotFound(err) {
		h.logger.Warn("event store read failed",
			slog.Int("year", year), slog.Any("error", err))
	}

	events, err = hebcal.YearEvents(year, diaspora)
	if err != nil {
		return nil, err
	}

	if saveErr := h.db.SaveYearEvents(ctx, year, diaspora, events); saveErr != nil {
		h.logger.Warn("event store write failed",
			slog.Int("year", year), slog.Any("error", saveErr))
	}
	return events, nil
}

// parshaSchedule mirrors yearEvents for the Torah reading schedule.
func (h *Handlers) parshaSchedule(ctx context.Context, year int) (map[string]time.Time, error) {
	schedule, err := h.db.GetParshaSchedule(ctx, year)
	if err == nil {
		return schedule, nil
	}
	if !database.IsNotFound(err) {
		h.logger.Warn("portion store read failed",
			slog.Int("year", year), slog.Any("error", err))
	}

	schedule, err = hebcal.ParshaSchedule(year)
	if err != nil {
		return nil, err
	}

	if saveErr := h.db.SaveParshaSchedule(ctx, year, schedule); saveErr != nil {
		h.logger.Warn("portion store write failed",
			slog.Int("year", year), slog.Any("error", saveErr))
	}
	return schedule, nil
}

// =============================================================================
// Helpers
// =============================================================================

// observance resolves the ?observance= query parameter, falling back to the
// configured default. The second return is false for unrecognized values.
func (h *Handlers) observance(r *http.Request) (diaspora, ok bool) {
	switch r.URL.Query().Get("observance") {
	case "":
		return h.cfg.Diaspora, true
	case "diaspora":
		return true, true
	case "israel":
		return false, true
	default:
		return false, false
	}
}

func observanceName(diaspora bool) string {
	if diaspora {
		return "diaspora"
	}
	return "israel"
}

func sortedEvents(events map[time.Time][]string) []DayEvents {
	dates := make([]time.Time, 0, len(events))
	for d := range events {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]DayEvents, 0, len(dates))
	for _, d := range dates {
		out = append(out, DayEvents{
			Date:   d.Format(civilDateFormat),
			Labels: events[d],
		})
	}
	return out
}

func sortedPortions(schedule map[string]time.Time) []PortionEntry {
	out := make([]PortionEntry, 0, len(schedule))
	for portion, d := range schedule {
		out = append(out, PortionEntry{Portion: portion, Date: d.Format(civilDateFormat)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// upcomingPortion returns the portion read on or after the given date, or ""
// when the date falls past the year's last Shabbat.
func upcomingPortion(schedule map[string]time.Time, from time.Time) string {
	best := ""
	var bestDate time.Time
	for portion, d := range schedule {
		if d.Before(from) {
			continue
		}
		if best == "" || d.Before(bestDate) {
			best = portion
			bestDate = d
		}
	}
	return best
}
