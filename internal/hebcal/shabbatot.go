package hebcal

// specialShabbatot computes the Shabbatot named by proximity to another
// event rather than by fixed date.
func specialShabbatot(year int) EventTable {
	events := make(EventTable)

	// Shabbat Shuva: the Saturday strictly between Rosh Hashana and
	// Yom Kippur.
	rosh := hebrewToCivil(year, 1, 1)
	kippur := hebrewToCivil(year, 1, 10)
	shuva := shabbatOnOrAfter(rosh)
	if shuva.Before(kippur) {
		events.add(shuva, "Shabbas Shuva")
	}

	// One or two Shabbatot inside the eight days of Chanukah.
	chanukah1 := hebrewToCivil(year, 3, 25)
	chanukah8 := chanukah1.AddDate(0, 0, 7)
	first := shabbatOnOrAfter(chanukah1)
	if !first.After(chanukah8) {
		events.add(first, "Shabbas Chanukah")
	}
	second := first.AddDate(0, 0, 7)
	if !second.After(chanukah8) {
		events.add(second, "Shabbas Chanukah II")
	}

	// Shabbat Shekalim: on or immediately before 1 Adar I.
	events.add(shabbatOnOrBefore(hebrewToCivil(year, adarI(year), 1)), "Shabbas Shekalim")

	// Shabbat Zachor: strictly before Purim.
	purim := hebrewToCivil(year, adar(year), 14)
	events.add(shabbatBefore(purim), "Shabbas Zachor")

	// Shabbat HaChodesh: on or immediately before 1 Nisan; Shabbat Parah is
	// exactly one week earlier.
	haChodesh := shabbatOnOrBefore(hebrewToCivil(year, monthIndex(year, "Nisan"), 1))
	events.add(haChodesh, "Shabbas HaChodesh")
	events.add(haChodesh.AddDate(0, 0, -7), "Shabbas Parah")

	// Shabbat HaGadol: strictly before Pesach.
	pesach := hebrewToCivil(year, monthIndex(year, "Nisan"), 15)
	events.add(shabbatBefore(pesach), "Shabbas HaGadol")

	return events
}
