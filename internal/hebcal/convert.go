package hebcal

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange reports an input outside the supported calendar domain:
// a Hebrew year before 1, a month or day outside its year's profile, or a
// civil date before the Hebrew epoch.
var ErrOutOfRange = errors.New("date out of range")

// IsOutOfRange checks if an error is an out-of-range error.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// HebrewDate is a date on the Hebrew calendar. Month is 1-indexed from
// Tishrei: 1..12 in common years, 1..13 in leap years.
type HebrewDate struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
}

// String returns "D MonthName YYYY".
func (d HebrewDate) String() string {
	return fmt.Sprintf("%d %s %d", d.Day, d.MonthName, d.Year)
}

// Label returns "D MonthName" for calendar cell display.
func (d HebrewDate) Label() string {
	return fmt.Sprintf("%d %s", d.Day, d.MonthName)
}

// ToGregorian converts a Hebrew date to the civil date during whose daytime
// it is observed. It fails with ErrOutOfRange if the year is before 1 or the
// month or day lies outside the year's profile; clamping would silently
// corrupt every schedule downstream.
func ToGregorian(year, month, day int) (time.Time, error) {
	if year < 1 {
		return time.Time{}, fmt.Errorf("hebrew year %d: %w", year, ErrOutOfRange)
	}
	lengths := MonthLengths(year)
	if month < 1 || month > len(lengths) {
		return time.Time{}, fmt.Errorf("hebrew month %d of year %d: %w", month, year, ErrOutOfRange)
	}
	if day < 1 || day > lengths[month-1] {
		return time.Time{}, fmt.Errorf("hebrew day %d of month %d, year %d: %w", day, month, year, ErrOutOfRange)
	}
	return hebrewToCivil(year, month, day), nil
}

// hebrewToCivil is the unchecked conversion core. The +1 undoes the sunset
// display convention applied on the decode side.
func hebrewToCivil(year, month, day int) time.Time {
	jdn := roshHashanahJDN(year) + 1
	lengths := MonthLengths(year)
	for i := 0; i < month-1; i++ {
		jdn += lengths[i]
	}
	return jdnToGregorian(jdn + day - 1)
}

// FromGregorian converts a civil date to the Hebrew date visible during its
// daytime. The Hebrew day begins at the preceding sunset, so one day is
// subtracted from the day-within-year index before mapping to a month and
// day; without the correction every date would display the following Hebrew
// date all day. Mutual inverse of ToGregorian over the supported domain.
func FromGregorian(date time.Time) (HebrewDate, error) {
	jdn := jdnOf(date)
	if jdn <= hebrewEpochJDN {
		return HebrewDate{}, fmt.Errorf("civil date %s precedes the hebrew epoch: %w",
			date.Format("2006-01-02"), ErrOutOfRange)
	}

	// Estimate low, then walk to the year whose displayed 1 Tishrei is on or
	// before the query and whose successor's is after it.
	year := (jdn - hebrewEpochJDN) / 366
	if year < 1 {
		year = 1
	}
	for roshHashanahJDN(year+1)+1 <= jdn {
		year++
	}
	for year > 1 && roshHashanahJDN(year)+1 > jdn {
		year--
	}

	dayInYear := jdn - roshHashanahJDN(year) - 1 // sunset correction
	lengths := MonthLengths(year)
	names := MonthNames(year)
	for i, length := range lengths {
		if dayInYear < length {
			return HebrewDate{
				Year:      year,
				Month:     i + 1,
				Day:       dayInYear + 1,
				MonthName: names[i],
			}, nil
		}
		dayInYear -= length
	}

	// The month lengths sum to the year length, so the scan above always
	// terminates. Landing here means the two disagree; clamping to 29 Elul
	// would silently map two civil dates to one Hebrew date.
	return HebrewDate{}, fmt.Errorf("civil date %s: day %d overflows hebrew year %d",
		date.Format("2006-01-02"), jdn-roshHashanahJDN(year), year)
}
