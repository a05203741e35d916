package hebcal

import "time"

// dow returns the day of week as 0=Sunday through 6=Saturday.
func dow(d time.Time) int {
	return int(d.Weekday())
}

// shabbatOnOrBefore returns the last Saturday on or before d.
func shabbatOnOrBefore(d time.Time) time.Time {
	return d.AddDate(0, 0, -((dow(d) + 1) % 7))
}

// shabbatOnOrAfter returns the next Saturday on or after d.
func shabbatOnOrAfter(d time.Time) time.Time {
	return d.AddDate(0, 0, (6-dow(d))%7)
}

// shabbatBefore returns the Saturday strictly before d.
func shabbatBefore(d time.Time) time.Time {
	s := shabbatOnOrBefore(d)
	if s.Before(d) {
		return s
	}
	return s.AddDate(0, 0, -7)
}
