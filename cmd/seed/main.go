// Command seed precomputes a range of Hebrew years into the SQLite store.
//
// Usage:
//
//	go run ./cmd/seed -db data/luach.db -from 5780 -to 5800
//
// This tool:
// 1. Creates/opens the SQLite database
// 2. Runs migrations to ensure schema is current
// 3. Computes and stores both observance variants of every year in range,
//    plus the reading schedule
//
// Seeding is idempotent - stored years are simply replaced.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgreenbaum/luach-api/internal/database"
	"github.com/dgreenbaum/luach-api/internal/hebcal"
)

func main() {
	// Parse command line flags
	dbPath := flag.String("db", "data/luach.db", "Path to SQLite database")
	from := flag.Int("from", 5780, "First Hebrew year to precompute")
	to := flag.Int("to", 5800, "Last Hebrew year to precompute (inclusive)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if *from < 1 || *to < *from {
		logger.Error("invalid year range",
			slog.Int("from", *from), slog.Int("to", *to))
		os.Exit(2)
	}

	if err := run(*dbPath, *from, *to, logger); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed complete")
}

func run(dbPath string, from, to int, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 2: Compute and store each year
	// =========================================================================
	eventRows := 0
	for year := from; year <= to; year++ {
		for _, diaspora := range []bool{true, false} {
			events, err := hebcal.YearEvents(year, diaspora)
			if err != nil {
				return fmt.Errorf("compute events for %d: %w", year, err)
			}
			if err := db.SaveYearEvents(ctx, year, diaspora, events); err != nil {
				return fmt.Errorf("store events for %d: %w", year, err)
			}
			eventRows += len(events)
		}

		schedule, err := hebcal.ParshaSchedule(year)
		if err != nil {
			return fmt.Errorf("compute schedule for %d: %w", year, err)
		}
		if err := db.SaveParshaSchedule(ctx, year, schedule); err != nil {
			return fmt.Errorf("store schedule for %d: %w", year, err)
		}

		logger.Debug("year stored",
			slog.Int("year", year),
			slog.Int("portions", len(schedule)),
		)
	}

	// =========================================================================
	// Step 3: Verify coverage
	// =========================================================================
	years, err := db.StoredYears(ctx, true)
	if err != nil {
		return fmt.Errorf("verify coverage: %w", err)
	}

	logger.Info("store seeded",
		slog.Int("years", len(years)),
		slog.Int("event_dates", eventRows),
		slog.Duration("elapsed", time.Since(startTime)),
	)

	return nil
}
