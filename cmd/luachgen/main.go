// Command luachgen prints the computed tables for one Hebrew year.
//
// Usage:
//
//	go run ./cmd/luachgen -year 5785 -observance diaspora
//
// The output lists the year's key dates, then the full event table and
// Torah reading schedule as CSV, suitable for spot-checking against a
// printed luach.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dgreenbaum/luach-api/internal/hebcal"
)

func main() {
	year := flag.Int("year", 0, "Hebrew year to generate (default: current)")
	observance := flag.String("observance", "diaspora", "diaspora or israel")
	flag.Parse()

	diaspora := true
	switch *observance {
	case "diaspora":
	case "israel":
		diaspora = false
	default:
		fmt.Fprintf(os.Stderr, "unknown observance %q (use diaspora or israel)\n", *observance)
		os.Exit(2)
	}

	hy := *year
	if hy == 0 {
		now := time.Now().UTC()
		today, err := hebcal.FromGregorian(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve current year: %v\n", err)
			os.Exit(1)
		}
		hy = today.Year
	}

	if err := run(hy, diaspora); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(year int, diaspora bool) error {
	profile, err := hebcal.Profile(year)
	if err != nil {
		return fmt.Errorf("year profile: %w", err)
	}

	fmt.Printf("=== Hebrew Year %d ===\n\n", year)

	fmt.Println("Key Dates:")
	fmt.Printf("  Rosh Hashana:    %s\n", formatDate(hebcal.RoshHashanah(year)))
	fmt.Printf("  Next Rosh Hashana: %s\n", formatDate(hebcal.RoshHashanah(year+1)))
	fmt.Printf("  Year length:     %d days\n", profile.Length)
	fmt.Printf("  Leap year:       %v\n", profile.Leap)
	fmt.Println()

	fmt.Println("Months:")
	for i, name := range profile.MonthNames {
		fmt.Printf("  %2d. %-9s %d days\n", i+1, name, profile.MonthLengths[i])
	}
	fmt.Println()

	events, err := hebcal.YearEvents(year, diaspora)
	if err != nil {
		return fmt.Errorf("year events: %w", err)
	}

	dates := make([]time.Time, 0, len(events))
	for d := range events {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	fmt.Println("=== Events ===")
	fmt.Println("Date,Weekday,Label")
	for _, d := range dates {
		for _, label := range events[d] {
			fmt.Printf("%s,%s,%s\n", formatDate(d), d.Weekday(), label)
		}
	}
	fmt.Println()

	schedule, err := hebcal.ParshaSchedule(year)
	if err != nil {
		return fmt.Errorf("reading schedule: %w", err)
	}

	portions := make([]string, 0, len(schedule))
	for p := range schedule {
		portions = append(portions, p)
	}
	sort.Slice(portions, func(i, j int) bool {
		return schedule[portions[i]].Before(schedule[portions[j]])
	})

	fmt.Println("=== Torah Readings ===")
	fmt.Println("Date,Portion")
	for _, p := range portions {
		fmt.Printf("%s,%s\n", formatDate(schedule[p]), p)
	}

	return nil
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
