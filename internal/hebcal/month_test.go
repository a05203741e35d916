package hebcal

import "testing"

func TestMonthGrid_October2024(t *testing.T) {
	grid, err := MonthGrid(2024, 10, true)
	if err != nil {
		t.Fatalf("MonthGrid(2024, 10) failed: %v", err)
	}
	if len(grid) != 31 {
		t.Fatalf("grid has %d days, want 31", len(grid))
	}

	tests := []struct {
		day    int
		label  string
		parsha string
		events string
	}{
		{2, "29 Elul", "", ""},
		{3, "1 Tishrei", "", "Rosh Chodesh Tishrei, Rosh Hashana 1"},
		{4, "2 Tishrei", "", "Rosh Hashana 2"},
		{12, "10 Tishrei", "", "Yom Kippur"},
		{25, "23 Tishrei", "", "Simchat Torah"},
		{26, "24 Tishrei", "Bereishis", ""},
	}

	for _, tt := range tests {
		cell, ok := grid[tt.day]
		if !ok {
			t.Errorf("day %d missing from grid", tt.day)
			continue
		}
		if cell.HebrewLabel != tt.label {
			t.Errorf("day %d label = %q, want %q", tt.day, cell.HebrewLabel, tt.label)
		}
		if cell.Parsha != tt.parsha {
			t.Errorf("day %d parsha = %q, want %q", tt.day, cell.Parsha, tt.parsha)
		}
		if cell.Events != tt.events {
			t.Errorf("day %d events = %q, want %q", tt.day, cell.Events, tt.events)
		}
	}
}

func TestMonthGrid_ParshaOnlyOnSaturdays(t *testing.T) {
	grid, err := MonthGrid(2025, 1, true)
	if err != nil {
		t.Fatalf("MonthGrid(2025, 1) failed: %v", err)
	}

	for day, cell := range grid {
		d := civilDate(2025, 1, day)
		if dow(d) != 6 && cell.Parsha != "" {
			t.Errorf("weekday %s carries parsha %q", d.Format("2006-01-02"), cell.Parsha)
		}
		if dow(d) == 6 && cell.Parsha == "" {
			t.Errorf("saturday %s has no parsha", d.Format("2006-01-02"))
		}
	}
}

func TestMonthGrid_InvalidMonth(t *testing.T) {
	if _, err := MonthGrid(2024, 0, true); !IsOutOfRange(err) {
		t.Errorf("MonthGrid month 0 error = %v, want out of range", err)
	}
	if _, err := MonthGrid(2024, 13, true); !IsOutOfRange(err) {
		t.Errorf("MonthGrid month 13 error = %v, want out of range", err)
	}
}

func TestMonthTitle(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2024, 10, "Elul 5784 / Tishrei 5785"},
		{2025, 1, "Tevet 5785 / Shevat 5785"},
	}

	for _, tt := range tests {
		got, err := MonthTitle(tt.year, tt.month)
		if err != nil {
			t.Fatalf("MonthTitle(%d, %d) failed: %v", tt.year, tt.month, err)
		}
		if got != tt.want {
			t.Errorf("MonthTitle(%d, %d) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}
