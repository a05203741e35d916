package database

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// civilDateFormat is how civil dates are stored in SQLite TEXT columns.
const civilDateFormat = "2006-01-02"

// =============================================================================
// Event Table Queries
// =============================================================================

// SaveYearEvents replaces the stored event table for a (year, observance)
// pair. Rows are written in date order with label positions preserved, so a
// later load reproduces the computed table exactly.
func (db *DB) SaveYearEvents(ctx context.Context, year int, diaspora bool, events map[time.Time][]string) error {
	dates := make([]time.Time, 0, len(events))
	for d := range events {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM hebrew_events WHERE hebrew_year = ? AND diaspora = ?",
			year, boolToInt(diaspora),
		)
		if err != nil {
			return fmt.Errorf("clear year events: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO hebrew_events (hebrew_year, diaspora, civil_date, position, label)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare event insert: %w", err)
		}
		defer stmt.Close()

		for _, d := range dates {
			for pos, label := range events[d] {
				_, err := stmt.ExecContext(ctx,
					year, boolToInt(diaspora), d.Format(civilDateFormat), pos, label,
				)
				if err != nil {
					return fmt.Errorf("insert event %q on %s: %w", label, d.Format(civilDateFormat), err)
				}
			}
		}
		return nil
	})
}

// GetYearEvents loads the stored event table for a (year, observance) pair.
// Returns ErrNotFound when the year has not been stored.
func (db *DB) GetYearEvents(ctx context.Context, year int, diaspora bool) (map[time.Time][]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT civil_date, label
		FROM hebrew_events
		WHERE hebrew_year = ? AND diaspora = ?
		ORDER BY civil_date, position
	`, year, boolToInt(diaspora))
	if err != nil {
		return nil, fmt.Errorf("query year events: %w", err)
	}
	defer rows.Close()

	events := make(map[time.Time][]string)
	for rows.Next() {
		var dateStr, label string
		if err := rows.Scan(&dateStr, &label); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		d, err := time.ParseInLocation(civilDateFormat, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		events[d] = append(events[d], label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	if len(events) == 0 {
		return nil, ErrNotFound
	}
	return events, nil
}

// =============================================================================
// Torah Portion Queries
// =============================================================================

// SaveParshaSchedule replaces the stored reading schedule for a Hebrew year.
func (db *DB) SaveParshaSchedule(ctx context.Context, year int, schedule map[string]time.Time) error {
	portions := make([]string, 0, len(schedule))
	for p := range schedule {
		portions = append(portions, p)
	}
	sort.Slice(portions, func(i, j int) bool {
		return schedule[portions[i]].Before(schedule[portions[j]])
	})

	return db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM parsha_portions WHERE hebrew_year = ?", year,
		)
		if err != nil {
			return fmt.Errorf("clear year portions: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO parsha_portions (hebrew_year, portion, civil_date)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare portion insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range portions {
			_, err := stmt.ExecContext(ctx, year, p, schedule[p].Format(civilDateFormat))
			if err != nil {
				return fmt.Errorf("insert portion %q: %w", p, err)
			}
		}
		return nil
	})
}

// GetParshaSchedule loads the stored reading schedule for a Hebrew year.
// Returns ErrNotFound when the year has not been stored.
func (db *DB) GetParshaSchedule(ctx context.Context, year int) (map[string]time.Time, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT portion, civil_date
		FROM parsha_portions
		WHERE hebrew_year = ?
	`, year)
	if err != nil {
		return nil, fmt.Errorf("query year portions: %w", err)
	}
	defer rows.Close()

	schedule := make(map[string]time.Time)
	for rows.Next() {
		var portion, dateStr string
		if err := rows.Scan(&portion, &dateStr); err != nil {
			return nil, fmt.Errorf("scan portion row: %w", err)
		}
		d, err := time.ParseInLocation(civilDateFormat, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		schedule[portion] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate portion rows: %w", err)
	}

	if len(schedule) == 0 {
		return nil, ErrNotFound
	}
	return schedule, nil
}

// =============================================================================
// Coverage Queries
// =============================================================================

// StoredYears lists the Hebrew years with a stored event table for the given
// observance, in ascending order.
func (db *DB) StoredYears(ctx context.Context, diaspora bool) ([]int, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT hebrew_year
		FROM hebrew_events
		WHERE diaspora = ?
		ORDER BY hebrew_year
	`, boolToInt(diaspora))
	if err != nil {
		return nil, fmt.Errorf("query stored years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate years: %w", err)
	}
	return years, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
