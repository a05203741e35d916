package hebcal

import (
	"fmt"
	"strings"
	"time"
)

// DayCell is one civil day in a month grid: the Hebrew date label, the
// parasha read that Saturday (empty on weekdays), and the comma-joined
// event labels.
type DayCell struct {
	HebrewLabel string `json:"hebrew_label"`
	Parsha      string `json:"parsha,omitempty"`
	Events      string `json:"events,omitempty"`
}

// MonthGrid composes the calendar-grid data for a civil month, keyed by day
// of month. Events and parasha schedules are merged from the up to three
// Hebrew years overlapping the month, so dates near Rosh Hashana carry both
// years' labels.
func MonthGrid(year, month int, diaspora bool) (map[int]DayCell, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("civil month %d: %w", month, ErrOutOfRange)
	}
	mid, err := FromGregorian(civilDate(year, month, 15))
	if err != nil {
		return nil, err
	}

	events := make(EventTable)
	parshiot := make(map[time.Time]string)
	for hy := mid.Year - 1; hy <= mid.Year+1; hy++ {
		if hy < 1 {
			continue
		}
		yearly, err := YearEvents(hy, diaspora)
		if err != nil {
			return nil, err
		}
		events.merge(yearly)

		schedule, err := ParshaSchedule(hy)
		if err != nil {
			return nil, err
		}
		for portion, d := range schedule {
			parshiot[d] = portion
		}
	}

	daysIn := daysInMonth(year, month)
	grid := make(map[int]DayCell, daysIn)
	for day := 1; day <= daysIn; day++ {
		d := civilDate(year, month, day)
		hd, err := FromGregorian(d)
		if err != nil {
			return nil, err
		}
		cell := DayCell{HebrewLabel: hd.Label()}
		if dow(d) == 6 {
			cell.Parsha = parshiot[d]
		}
		cell.Events = strings.Join(events[d], ", ")
		grid[day] = cell
	}

	return grid, nil
}

// MonthTitle returns the Hebrew header for a civil month, e.g.
// "Shevat 5786", or "Shevat 5786 / Adar 5786" when the month spans two
// Hebrew months.
func MonthTitle(year, month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("civil month %d: %w", month, ErrOutOfRange)
	}
	first, err := FromGregorian(civilDate(year, month, 1))
	if err != nil {
		return "", err
	}
	last, err := FromGregorian(civilDate(year, month, daysInMonth(year, month)))
	if err != nil {
		return "", err
	}
	if first.MonthName == last.MonthName && first.Year == last.Year {
		return fmt.Sprintf("%s %d", first.MonthName, first.Year), nil
	}
	return fmt.Sprintf("%s %d / %s %d", first.MonthName, first.Year, last.MonthName, last.Year), nil
}

// daysInMonth returns the number of days in a civil month.
func daysInMonth(year, month int) int {
	return civilDate(year, month+1, 0).Day()
}
