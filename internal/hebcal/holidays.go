package hebcal

import (
	"fmt"
	"strings"
	"time"
)

// EventTable maps civil dates (UTC midnight) to the ordered labels observed
// on them. A date may carry several simultaneous labels.
type EventTable map[time.Time][]string

func (t EventTable) add(d time.Time, label string) {
	t[d] = append(t[d], label)
}

// merge unions another table into t, concatenating labels on collision.
func (t EventTable) merge(other EventTable) {
	for d, labels := range other {
		t[d] = append(t[d], labels...)
	}
}

// YearEvents returns every observance of a Hebrew year keyed by civil date:
// the holiday table, Rosh Chodesh, and the special Shabbatot, with
// "Shabbas Rosh Chodesh" overlaid wherever Rosh Chodesh falls on a Saturday.
//
// The diaspora flag selects diaspora observance (second festival days) over
// Israel observance.
func YearEvents(year int, diaspora bool) (EventTable, error) {
	if year < 1 {
		return nil, fmt.Errorf("hebrew year %d: %w", year, ErrOutOfRange)
	}

	events := make(EventTable)
	events.merge(tishreiHolidays(year, diaspora))
	events.merge(chanukahHolidays(year))
	events.merge(shevatHolidays(year))
	events.merge(adarHolidays(year))
	events.merge(nisanHolidays(year, diaspora))
	events.merge(iyarHolidays(year))
	events.merge(sivanHolidays(year, diaspora))
	events.merge(avHolidays(year))
	events.merge(roshChodesh(year))
	events.merge(specialShabbatot(year))

	// Post-pass: a Saturday that is also Rosh Chodesh gains an extra label.
	for d, labels := range events {
		if dow(d) != 6 {
			continue
		}
		for _, label := range labels {
			if strings.HasPrefix(label, "Rosh Chodesh") {
				events.add(d, "Shabbas Rosh Chodesh")
				break
			}
		}
	}

	return events, nil
}

// tishreiHolidays covers Rosh Hashana through Simchat Torah.
// Rosh Hashana keeps two days everywhere; Sukkot and Shemini Atzeret gain
// their diaspora second day. The Fast of Gedaliah defers off Shabbat to
// Sunday.
func tishreiHolidays(year int, diaspora bool) EventTable {
	events := make(EventTable)

	rosh := hebrewToCivil(year, 1, 1)
	events.add(rosh, "Rosh Hashana 1")
	events.add(rosh.AddDate(0, 0, 1), "Rosh Hashana 2")

	gedaliah := hebrewToCivil(year, 1, 3)
	if dow(gedaliah) == 6 {
		gedaliah = gedaliah.AddDate(0, 0, 1)
	}
	events.add(gedaliah, "Fast of Gedaliah")

	events.add(hebrewToCivil(year, 1, 10), "Yom Kippur")

	sukkot := hebrewToCivil(year, 1, 15)
	events.add(sukkot, "Sukkot 1")
	if diaspora {
		events.add(sukkot.AddDate(0, 0, 1), "Sukkot 2")
	}
	for i := 2; i < 6; i++ {
		events.add(sukkot.AddDate(0, 0, i), "Chol HaMoed Sukkot")
	}
	events.add(sukkot.AddDate(0, 0, 6), "Hoshana Rabbah")

	atzeret := sukkot.AddDate(0, 0, 7)
	if diaspora {
		events.add(atzeret, "Shemini Atzeret")
		events.add(atzeret.AddDate(0, 0, 1), "Simchat Torah")
	} else {
		events.add(atzeret, "Shemini Atzeret/Simchat Torah")
	}

	return events
}

// chanukahHolidays covers the eight days from 25 Kislev and the fast of
// 10 Tevet. Kislev and Tevet sit at fixed indices 3 and 4 in both year
// parities; the leap insertion happens later, at Adar.
func chanukahHolidays(year int) EventTable {
	events := make(EventTable)

	first := hebrewToCivil(year, 3, 25)
	for i := 0; i < 8; i++ {
		label := "Chanukah"
		if i > 0 {
			label = fmt.Sprintf("Chanukah Day %d", i+1)
		}
		events.add(first.AddDate(0, 0, i), label)
	}

	events.add(hebrewToCivil(year, 4, 10), "Asara B'Tevet")
	return events
}

func shevatHolidays(year int) EventTable {
	events := make(EventTable)
	events.add(hebrewToCivil(year, 5, 15), "Tu B'Shvat")
	return events
}

// adarHolidays covers Purim and its satellites. In leap years Purim Katan
// and Shushan Purim Katan fall in Adar I on the same day numbers, with the
// main observances in Adar II. Ta'anit Esther moves earlier, to Thursday,
// when 13 Adar is a Saturday.
func adarHolidays(year int) EventTable {
	events := make(EventTable)

	if IsLeapYear(year) {
		events.add(hebrewToCivil(year, adarI(year), 14), "Purim Katan")
		events.add(hebrewToCivil(year, adarI(year), 15), "Shushan Purim Katan")
	}

	m := adar(year)
	esther := hebrewToCivil(year, m, 13)
	if dow(esther) == 6 {
		esther = esther.AddDate(0, 0, -2)
	}
	events.add(esther, "Ta'anit Esther")
	events.add(hebrewToCivil(year, m, 14), "Purim")
	events.add(hebrewToCivil(year, m, 15), "Shushan Purim")

	return events
}

// nisanHolidays covers Pesach and Yom HaShoah. Yom HaShoah shifts
// Friday to Thursday and Sunday to Monday.
func nisanHolidays(year int, diaspora bool) EventTable {
	events := make(EventTable)

	nisan := monthIndex(year, "Nisan")
	pesach := hebrewToCivil(year, nisan, 15)
	events.add(pesach.AddDate(0, 0, -1), "Erev Pesach")
	events.add(pesach, "Pesach 1")
	if diaspora {
		events.add(pesach.AddDate(0, 0, 1), "Pesach 2")
	}
	for i := 2; i < 6; i++ {
		events.add(pesach.AddDate(0, 0, i), "Chol HaMoed Pesach")
	}
	events.add(pesach.AddDate(0, 0, 6), "Pesach 7")
	if diaspora {
		events.add(pesach.AddDate(0, 0, 7), "Pesach 8")
	}

	shoah := hebrewToCivil(year, nisan, 27)
	switch dow(shoah) {
	case 5:
		shoah = shoah.AddDate(0, 0, -1)
	case 0:
		shoah = shoah.AddDate(0, 0, 1)
	}
	events.add(shoah, "Yom HaShoah")

	return events
}

// iyarHolidays covers the national days and Lag B'Omer. Yom HaZikaron
// shifts Friday and Saturday back to Thursday and Sunday forward to Monday,
// with Yom HaAtzmaut always the following day.
func iyarHolidays(year int) EventTable {
	events := make(EventTable)

	iyar := monthIndex(year, "Iyar")
	zikaron := hebrewToCivil(year, iyar, 4)
	switch dow(zikaron) {
	case 5:
		zikaron = zikaron.AddDate(0, 0, -1)
	case 6:
		zikaron = zikaron.AddDate(0, 0, -2)
	case 0:
		zikaron = zikaron.AddDate(0, 0, 1)
	}
	events.add(zikaron, "Yom HaZikaron")
	events.add(zikaron.AddDate(0, 0, 1), "Yom HaAtzmaut")

	events.add(hebrewToCivil(year, iyar, 18), "Lag B'Omer")
	events.add(hebrewToCivil(year, iyar, 28), "Yom Yerushalayim")

	return events
}

func sivanHolidays(year int, diaspora bool) EventTable {
	events := make(EventTable)

	shavuot := hebrewToCivil(year, monthIndex(year, "Sivan"), 6)
	events.add(shavuot, "Shavuot 1")
	if diaspora {
		events.add(shavuot.AddDate(0, 0, 1), "Shavuot 2")
	}

	return events
}

// avHolidays covers the summer fasts and Tu B'Av. Both fasts defer off
// Shabbat to Sunday.
func avHolidays(year int) EventTable {
	events := make(EventTable)

	tammuz17 := hebrewToCivil(year, monthIndex(year, "Tammuz"), 17)
	if dow(tammuz17) == 6 {
		tammuz17 = tammuz17.AddDate(0, 0, 1)
	}
	events.add(tammuz17, "17 Tammuz")

	av := monthIndex(year, "Av")
	tishaBAv := hebrewToCivil(year, av, 9)
	if dow(tishaBAv) == 6 {
		tishaBAv = tishaBAv.AddDate(0, 0, 1)
	}
	events.add(tishaBAv, "Tisha B'Av")

	events.add(hebrewToCivil(year, av, 15), "Tu B'Av")
	return events
}
