package hebcal

// roshChodesh emits "Rosh Chodesh <month>" on the first day of the month
// following each month of the year. When the ending month has 30 days the
// observance is two days and a second entry lands on its day 30. The final
// iteration emits Rosh Chodesh Tishrei on the next year's 1 Tishrei.
func roshChodesh(year int) EventTable {
	events := make(EventTable)
	lengths := MonthLengths(year)
	names := MonthNames(year)

	base := roshHashanahJDN(year) + 1
	offset := 0
	for i, length := range lengths {
		label := "Rosh Chodesh " + names[(i+1)%len(names)]
		first := base + offset + length
		events.add(jdnToGregorian(first), label)
		if length == 30 {
			events.add(jdnToGregorian(first-1), label)
		}
		offset += length
	}

	return events
}
