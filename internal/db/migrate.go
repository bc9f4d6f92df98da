package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillDayIndex(db); err != nil {
		return fmt.Errorf("backfilling day_index values: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS days (
		id            TEXT PRIMARY KEY,
		trip_id       TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		date          TEXT NOT NULL,
		timeline_json TEXT NOT NULL DEFAULT '[]',
		updated_at    TEXT NOT NULL,
		UNIQUE (trip_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_days_trip ON days(trip_id)`,

	// Position of the day inside its trip; older databases derived it
	// from the date.
	`ALTER TABLE days ADD COLUMN day_index INTEGER NOT NULL DEFAULT -1`,

	// Mutation counter used to detect stale route searches.
	`ALTER TABLE days ADD COLUMN revision INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillDayIndex numbers days that predate the day_index column
// (day_index = -1) in date order within each trip. Idempotent.
func migrateBackfillDayIndex(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM days WHERE day_index < 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking day_index: %w", err)
	}
	if count == 0 {
		return nil
	}

	rows, err := db.QueryContext(ctx, `SELECT id, trip_id FROM days ORDER BY trip_id, date`)
	if err != nil {
		return fmt.Errorf("listing days for backfill: %w", err)
	}
	type dayRow struct{ id, tripID string }
	var days []dayRow
	for rows.Next() {
		var d dayRow
		if err := rows.Scan(&d.id, &d.tripID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning day: %w", err)
		}
		days = append(days, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating days: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting backfill transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	index, trip := 0, ""
	for _, d := range days {
		if d.tripID != trip {
			index, trip = 0, d.tripID
		}
		if _, err := tx.ExecContext(ctx, `UPDATE days SET day_index = ? WHERE id = ?`, index, d.id); err != nil {
			return fmt.Errorf("updating day %s: %w", d.id, err)
		}
		index++
	}
	return tx.Commit()
}
