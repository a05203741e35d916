package hebcal

import (
	"testing"
	"time"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{5782, true},
		{5783, false},
		{5784, true},
		{5785, false},
		{5786, false},
		{5787, true},
	}

	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestLeapCycle(t *testing.T) {
	// Any 19 consecutive years contain exactly 7 leap years.
	for start := 5600; start < 5800; start++ {
		leaps := 0
		for y := start; y < start+19; y++ {
			if IsLeapYear(y) {
				leaps++
			}
		}
		if leaps != 7 {
			t.Fatalf("window starting %d has %d leap years, want 7", start, leaps)
		}
	}
}

func TestYearLength(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{5784, 383},
		{5785, 355},
		{5786, 354},
		// Years whose start is postponed beyond the molad conditions: the
		// raw count would give 356 (5745, 5789) or leave 5765 at 382.
		{5745, 354},
		{5765, 383},
		{5789, 354},
	}

	for _, tt := range tests {
		if got := YearLength(tt.year); got != tt.want {
			t.Errorf("YearLength(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestYearLength_Closure(t *testing.T) {
	common := map[int]bool{353: true, 354: true, 355: true}
	leap := map[int]bool{383: true, 384: true, 385: true}

	for y := 4000; y < 7000; y++ {
		length := YearLength(y)
		if IsLeapYear(y) {
			if !leap[length] {
				t.Errorf("leap year %d has length %d, want one of 383-385", y, length)
			}
		} else if !common[length] {
			t.Errorf("common year %d has length %d, want one of 353-355", y, length)
		}
	}
}

func TestMonthLengths_SumToYearLength(t *testing.T) {
	for y := 5400; y < 6000; y++ {
		lengths := MonthLengths(y)

		wantMonths := 12
		if IsLeapYear(y) {
			wantMonths = 13
		}
		if len(lengths) != wantMonths {
			t.Fatalf("year %d has %d months, want %d", y, len(lengths), wantMonths)
		}

		sum := 0
		for _, n := range lengths {
			sum += n
		}
		if sum != YearLength(y) {
			t.Errorf("year %d month lengths sum to %d, want %d", y, sum, YearLength(y))
		}
	}
}

func TestMonthNames(t *testing.T) {
	common := MonthNames(5785)
	if len(common) != 12 {
		t.Fatalf("common year has %d month names, want 12", len(common))
	}
	if common[5] != "Adar" {
		t.Errorf("common year month 6 = %q, want Adar", common[5])
	}

	leap := MonthNames(5784)
	if len(leap) != 13 {
		t.Fatalf("leap year has %d month names, want 13", len(leap))
	}
	if leap[5] != "Adar I" || leap[6] != "Adar II" {
		t.Errorf("leap year months 6-7 = %q, %q, want Adar I, Adar II", leap[5], leap[6])
	}
	if leap[7] != "Nisan" {
		t.Errorf("leap year month 8 = %q, want Nisan", leap[7])
	}
}

func TestMonthNames_CoIndexed(t *testing.T) {
	for _, y := range []int{5783, 5784, 5785, 5787} {
		if got, want := len(MonthNames(y)), len(MonthLengths(y)); got != want {
			t.Errorf("year %d: %d names for %d lengths", y, got, want)
		}
	}
}

func TestProfile(t *testing.T) {
	profile, err := Profile(5784)
	if err != nil {
		t.Fatalf("Profile(5784) failed: %v", err)
	}
	if !profile.Leap {
		t.Error("Profile(5784).Leap = false, want true")
	}
	if profile.Length != 383 {
		t.Errorf("Profile(5784).Length = %d, want 383", profile.Length)
	}

	if _, err := Profile(0); !IsOutOfRange(err) {
		t.Errorf("Profile(0) error = %v, want out of range", err)
	}
}

func TestRoshHashanah(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{5785, civilDate(2024, 10, 3)},
		// Postponed starts, checked against published calendars.
		{5745, civilDate(1984, 9, 27)},
		{5765, civilDate(2004, 9, 16)},
		{5789, civilDate(2028, 9, 21)},
	}

	for _, tt := range tests {
		got := RoshHashanah(tt.year)
		if !got.Equal(tt.want) {
			t.Errorf("RoshHashanah(%d) = %s, want %s",
				tt.year, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}
