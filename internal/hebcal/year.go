package hebcal

import (
	"fmt"
	"strings"
	"time"
)

// hebrewEpochJDN is the Julian Day Number of 1 Tishrei, year 1.
const hebrewEpochJDN = 347998

// Month names from Tishrei. Leap years split Adar in two.
var (
	monthNamesCommon = []string{
		"Tishrei", "Cheshvan", "Kislev", "Tevet", "Shevat", "Adar",
		"Nisan", "Iyar", "Sivan", "Tammuz", "Av", "Elul",
	}
	monthNamesLeap = []string{
		"Tishrei", "Cheshvan", "Kislev", "Tevet", "Shevat", "Adar I",
		"Adar II", "Nisan", "Iyar", "Sivan", "Tammuz", "Av", "Elul",
	}
)

// IsLeapYear reports whether a Hebrew year has 13 months.
// Seven of every nineteen years are leap years, at the fixed cycle
// positions implied by (7y+1) mod 19 < 7.
func IsLeapYear(year int) bool {
	return (7*year+1)%19 < 7
}

// elapsedDays returns the molad-based day count of 1 Tishrei of year,
// measured from the Hebrew epoch, with two of the four postponements
// applied. Elapsed months average 29 days and 13753/25920 parts; the extra
// six hours folded into the 12084-part offset defer a noon-or-later molad
// (molad zaken), and the weekday check defers Sunday, Wednesday and Friday
// starts (lo ADU).
func elapsedDays(year int) int {
	months := (235*year - 234) / 19
	parts := 12084 + 13753*months
	day := months*29 + parts/25920
	if (3*(day+1))%7 < 3 {
		day++
	}
	return day
}

// startDelay applies the remaining two postponements, which surface as
// impossible raw year lengths rather than molad conditions: a year that
// would run 356 days starts two days late (GaTaRaD, Tuesday molad of a
// common year), and the year after one that would run 382 days starts one
// day late (BeTUTaKPoT, Monday molad following a leap year).
func startDelay(year int) int {
	switch {
	case elapsedDays(year+1)-elapsedDays(year) == 356:
		return 2
	case elapsedDays(year)-elapsedDays(year-1) == 382:
		return 1
	}
	return 0
}

// firstDayOfYear is the fully postponed day count of 1 Tishrei of year,
// measured from the Hebrew epoch.
func firstDayOfYear(year int) int {
	return elapsedDays(year) + startDelay(year)
}

// YearLength returns the number of days in a Hebrew year: one of 353, 354
// or 355 for common years and 383, 384 or 385 for leap years, encoding
// whether Cheshvan and Kislev run short or full.
func YearLength(year int) int {
	return firstDayOfYear(year+1) - firstDayOfYear(year)
}

// roshHashanahJDN is the Julian Day Number anchoring 1 Tishrei of a Hebrew
// year. This is the evening-start day; the civil date that displays
// 1 Tishrei during its daytime is one day later.
func roshHashanahJDN(year int) int {
	return hebrewEpochJDN + firstDayOfYear(year) - 1
}

// RoshHashanah returns the civil date that carries 1 Tishrei of the given
// Hebrew year under the sunset display convention.
func RoshHashanah(year int) time.Time {
	return jdnToGregorian(roshHashanahJDN(year) + 1)
}

// MonthLengths returns the ordered month lengths from Tishrei. Cheshvan and
// Kislev absorb the year's deficiency or completeness; all other months are
// fixed.
func MonthLengths(year int) []int {
	var cheshvan, kislev int
	switch YearLength(year) {
	case 353, 383:
		cheshvan, kislev = 29, 29
	case 354, 384:
		cheshvan, kislev = 29, 30
	default:
		cheshvan, kislev = 30, 30
	}
	if IsLeapYear(year) {
		return []int{30, cheshvan, kislev, 29, 30, 30, 29, 30, 29, 30, 29, 30, 29}
	}
	return []int{30, cheshvan, kislev, 29, 30, 29, 30, 29, 30, 29, 30, 29}
}

// MonthNames returns the ordered month names from Tishrei, splitting Adar
// into "Adar I" and "Adar II" in leap years. The returned slice is a copy.
func MonthNames(year int) []string {
	if IsLeapYear(year) {
		return append([]string(nil), monthNamesLeap...)
	}
	return append([]string(nil), monthNamesCommon...)
}

// YearProfile describes the derived shape of a Hebrew year.
type YearProfile struct {
	Year         int      `json:"year"`
	Leap         bool     `json:"leap"`
	Length       int      `json:"length"`
	MonthLengths []int    `json:"month_lengths"`
	MonthNames   []string `json:"month_names"`
}

// Profile returns the year profile for a Hebrew year.
func Profile(year int) (YearProfile, error) {
	if year < 1 {
		return YearProfile{}, fmt.Errorf("hebrew year %d: %w", year, ErrOutOfRange)
	}
	return YearProfile{
		Year:         year,
		Leap:         IsLeapYear(year),
		Length:       YearLength(year),
		MonthLengths: MonthLengths(year),
		MonthNames:   MonthNames(year),
	}, nil
}

// monthIndex returns the 1-indexed Tishrei-based month whose name starts
// with prefix, or 0 if no month matches.
func monthIndex(year int, prefix string) int {
	for i, name := range MonthNames(year) {
		if strings.HasPrefix(name, prefix) {
			return i + 1
		}
	}
	return 0
}

// adar returns the month that observes Purim: Adar II in leap years, the
// single Adar otherwise.
func adar(year int) int {
	if IsLeapYear(year) {
		return monthIndex(year, "Adar II")
	}
	return monthIndex(year, "Adar")
}

// adarI returns the first Adar, which is the only Adar in common years.
func adarI(year int) int {
	return monthIndex(year, "Adar")
}
