// Package hebcal implements the perpetual Hebrew/Gregorian calendar engine:
// date conversion, Hebrew year arithmetic, the holiday table, Rosh Chodesh,
// special Shabbatot, the annual parasha schedule, and a month-grid assembler
// for calendar rendering.
//
// All computation uses the classical fixed arithmetic (mean molad), not
// astronomical observation. Civil dates are represented as time.Time values
// at UTC midnight; every function is pure and safe for concurrent use.
package hebcal

import "time"

// gregorianToJDN converts a proleptic Gregorian date to its Julian Day Number.
func gregorianToJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// jdnToGregorian converts a Julian Day Number back to a civil date.
// Mutual inverse of gregorianToJDN over the whole supported range.
func jdnToGregorian(jdn int) time.Time {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153
	day := e - (153*m+2)/5 + 1
	month := m + 3 - 12*(m/10)
	year := 100*b + d - 4800 + m/10
	return civilDate(year, month, day)
}

// civilDate builds the canonical UTC-midnight representation of a civil date.
func civilDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// jdnOf returns the Julian Day Number of a civil date.
func jdnOf(d time.Time) int {
	return gregorianToJDN(d.Year(), int(d.Month()), d.Day())
}
