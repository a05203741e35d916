package hebcal

import (
	"fmt"
	"time"
)

// parshaOrder lists the 54 weekly portions in annual order. V'zos HaBracha
// is read on Simchat Torah itself and is excluded from the weekly run.
var parshaOrder = []string{
	"Bereishis", "Noach", "Lech Lecha", "Vayeira", "Chayei Sarah",
	"Toldos", "Vayeitzei", "Vayishlach", "Vayeishev", "Mikeitz",
	"Vayigash", "Vayechi",
	"Shemos", "Va'eira", "Bo", "Beshalach", "Yisro", "Mishpatim",
	"Terumah", "Tetzaveh", "Ki Sisa", "Vayakhel", "Pekudei",
	"Vayikra", "Tzav", "Shemini", "Tazria", "Metzora",
	"Acharei", "Kedoshim", "Emor", "Behar", "Bechukosai",
	"Bamidbar", "Nasso", "Beha'aloscha", "Shelach", "Korach",
	"Chukas", "Balak", "Pinchas", "Mattos", "Masei",
	"Devarim", "Va'Eschanan", "Eikev", "Re'eh", "Shoftim",
	"Ki Seitzei", "Ki Savo", "Nitzavim", "Vayeilech", "Haazinu",
	"V'zos HaBracha",
}

// Combination candidates, tried in order. Common years may need up to six
// doubled portions; leap years add enough Shabbatot that only two pairs ever
// combine.
var (
	combineCommon = [][2]string{
		{"Nitzavim", "Vayeilech"}, {"Vayakhel", "Pekudei"},
		{"Tazria", "Metzora"}, {"Acharei", "Kedoshim"},
		{"Behar", "Bechukosai"}, {"Mattos", "Masei"},
	}
	combineLeap = [][2]string{
		{"Mattos", "Masei"}, {"Nitzavim", "Vayeilech"},
	}
)

// ParshaSchedule assigns the year's weekly Torah portions to their diaspora
// Shabbat dates. The weekly run starts on the first Shabbat strictly after
// Simchat Torah (23 Tishrei) and ends on the last Shabbat strictly before
// the next Rosh Hashana; adjacent portions combine, joined with "+", until
// the list fits the available Shabbatot. V'zos HaBracha maps to Simchat
// Torah itself.
func ParshaSchedule(year int) (map[string]time.Time, error) {
	if year < 1 {
		return nil, fmt.Errorf("hebrew year %d: %w", year, ErrOutOfRange)
	}

	simchatTorah := hebrewToCivil(year, 1, 23)
	delta := (6 - dow(simchatTorah)) % 7
	if delta == 0 {
		delta = 7
	}
	firstShabbat := simchatTorah.AddDate(0, 0, delta)

	nextRosh := jdnToGregorian(roshHashanahJDN(year + 1))
	back := (dow(nextRosh) + 1) % 7
	if back == 0 {
		back = 7
	}
	lastShabbat := nextRosh.AddDate(0, 0, -back)

	weeks := int(lastShabbat.Sub(firstShabbat).Hours())/(24*7) + 1

	schedule := append([]string(nil), parshaOrder[:len(parshaOrder)-1]...)
	candidates := combineCommon
	if IsLeapYear(year) {
		candidates = combineLeap
	}

	for len(schedule) > weeks {
		combined := false
		for _, pair := range candidates {
			ia := indexOf(schedule, pair[0])
			ib := indexOf(schedule, pair[1])
			if ia >= 0 && ib == ia+1 {
				schedule[ia] = pair[0] + "+" + pair[1]
				schedule = append(schedule[:ib], schedule[ib+1:]...)
				combined = true
				break
			}
		}
		if !combined {
			break
		}
	}

	result := make(map[string]time.Time, len(schedule)+1)
	for i, portion := range schedule {
		result[portion] = firstShabbat.AddDate(0, 0, 7*i)
	}
	result["V'zos HaBracha"] = simchatTorah

	return result, nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
