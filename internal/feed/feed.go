// Package feed renders computed year tables as iCalendar feeds.
package feed

import (
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
)

// YearCalendar renders a Hebrew year's event table as an iCalendar document.
// Every entry becomes an all-day VEVENT; the output is deterministic for a
// given table so feeds can be cached or diffed.
func YearCalendar(year int, diaspora bool, events map[time.Time][]string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//luach-api//Hebrew Calendar//EN")
	cal.SetDescription(fmt.Sprintf("Hebrew year %d (%s observance)", year, observanceName(diaspora)))

	dates := make([]time.Time, 0, len(events))
	for d := range events {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for _, d := range dates {
		for i, label := range events[d] {
			// Stable UID so re-fetches update rather than duplicate
			uid := fmt.Sprintf("%d-%s-%s-%d@luach", year, observanceName(diaspora), d.Format("20060102"), i)
			ev := cal.AddEvent(uid)
			ev.SetDtStampTime(d)
			ev.SetAllDayStartAt(d)
			ev.SetAllDayEndAt(d.AddDate(0, 0, 1))
			ev.SetSummary(label)
		}
	}

	return cal.Serialize()
}

func observanceName(diaspora bool) string {
	if diaspora {
		return "diaspora"
	}
	return "israel"
}
