package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1YearTables,
}

// migrationV1YearTables creates the precomputed-year schema.
//
// Key design decisions:
//
// 1. WRITE-THROUGH MEMO, NOT SOURCE OF TRUTH
//   - Every row is reproducible from the arithmetic in internal/hebcal.
//   - The store only saves recomputing a full year table per request.
//   - Dropping the database loses nothing.
//
// 2. EVENTS KEYED BY (hebrew_year, diaspora)
//   - A year's holiday table differs between diaspora and Israel
//     observance, so both variants are stored independently.
//   - position preserves label order within a civil date; merged tables
//     are ordered (e.g. "Rosh Chodesh Tishrei" before "Rosh Hashana 1").
//
// 3. TORAH PORTIONS KEYED BY hebrew_year ONLY
//   - The reading schedule here follows the diaspora cycle and does not
//     vary with the observance flag, so one copy per year suffices.
//   - Combined portions are stored under their joined name
//     ("Vayakhel+Pekudei"), matching what the engine produces.
const migrationV1YearTables = `
-- Migration 001: Precomputed year tables

-- ============================================================================
-- Table: hebrew_events
-- ============================================================================
-- One row per (date, label) of a Hebrew year's event table.
-- ============================================================================
CREATE TABLE IF NOT EXISTS hebrew_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Hebrew year the table was computed for (e.g. 5785)
    hebrew_year INTEGER NOT NULL CHECK (hebrew_year >= 1),

    -- 1 for diaspora observance, 0 for Israel
    diaspora INTEGER NOT NULL CHECK (diaspora IN (0, 1)),

    -- Civil date of the event, YYYY-MM-DD
    civil_date TEXT NOT NULL,

    -- Order of the label within its date
    position INTEGER NOT NULL DEFAULT 0,

    -- Display label, e.g. "Yom Kippur", "Rosh Chodesh Adar II"
    label TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (hebrew_year, diaspora, civil_date, position)
);

-- Primary lookup: load a full year table
CREATE INDEX IF NOT EXISTS idx_hebrew_events_year
    ON hebrew_events(hebrew_year, diaspora);

-- For date-range queries across years
CREATE INDEX IF NOT EXISTS idx_hebrew_events_date
    ON hebrew_events(civil_date);


-- ============================================================================
-- Table: parsha_portions
-- ============================================================================
-- The weekly Torah reading schedule for a Hebrew year.
-- ============================================================================
CREATE TABLE IF NOT EXISTS parsha_portions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    hebrew_year INTEGER NOT NULL CHECK (hebrew_year >= 1),

    -- Portion name; combined weeks use the joined form "A+B"
    portion TEXT NOT NULL,

    -- Civil date the portion is read, YYYY-MM-DD
    civil_date TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (hebrew_year, portion)
);

CREATE INDEX IF NOT EXISTS idx_parsha_portions_year
    ON parsha_portions(hebrew_year);
`
