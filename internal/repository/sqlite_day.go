package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/tripline/internal/db"
	"github.com/alexanderramin/tripline/internal/domain"
)

// SQLiteDayRepo implements DayRepo. The timeline is stored as one JSON
// document per day.
type SQLiteDayRepo struct {
	db db.DBTX
}

// NewSQLiteDayRepo creates a new SQLiteDayRepo.
func NewSQLiteDayRepo(conn db.DBTX) *SQLiteDayRepo {
	return &SQLiteDayRepo{db: conn}
}

const daySelect = `SELECT id, trip_id, date, day_index, timeline_json, revision, updated_at FROM days`

func (r *SQLiteDayRepo) Create(ctx context.Context, d *domain.Day) error {
	timeline, err := encodeTimeline(d.Timeline)
	if err != nil {
		return err
	}
	query := `INSERT INTO days (id, trip_id, date, day_index, timeline_json, revision, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		d.ID, d.TripID, d.Date, d.Index, timeline, d.Revision, timestampOrNow(d.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting day %s: %w", d.Date, err)
	}
	return nil
}

func (r *SQLiteDayRepo) GetByID(ctx context.Context, id string) (*domain.Day, error) {
	return scanDay(r.db.QueryRowContext(ctx, daySelect+` WHERE id = ?`, id))
}

func (r *SQLiteDayRepo) GetByIndex(ctx context.Context, tripID string, index int) (*domain.Day, error) {
	return scanDay(r.db.QueryRowContext(ctx, daySelect+` WHERE trip_id = ? AND day_index = ?`, tripID, index))
}

func (r *SQLiteDayRepo) ListByTrip(ctx context.Context, tripID string) ([]*domain.Day, error) {
	rows, err := r.db.QueryContext(ctx, daySelect+` WHERE trip_id = ? ORDER BY day_index, date`, tripID)
	if err != nil {
		return nil, fmt.Errorf("listing days: %w", err)
	}
	defer rows.Close()

	var days []*domain.Day
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}
	return days, nil
}

func (r *SQLiteDayRepo) Update(ctx context.Context, d *domain.Day, expectedRevision int64) error {
	timeline, err := encodeTimeline(d.Timeline)
	if err != nil {
		return err
	}
	query := `UPDATE days SET date = ?, day_index = ?, timeline_json = ?, revision = ?, updated_at = ?
		WHERE id = ? AND revision = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Date, d.Index, timeline, d.Revision, nowUTC(), d.ID, expectedRevision)
	if err != nil {
		return fmt.Errorf("updating day %s: %w", d.Date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating day %s: %w", d.Date, err)
	}
	if n > 0 {
		return nil
	}

	// Distinguish a missing day from a concurrent edit.
	var stored int64
	err = r.db.QueryRowContext(ctx, `SELECT revision FROM days WHERE id = ?`, d.ID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("day %s: %w", d.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("reading day revision: %w", err)
	}
	return fmt.Errorf("day %s at revision %d, expected %d: %w", d.ID, stored, expectedRevision, ErrConflict)
}

func (r *SQLiteDayRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM days WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting day: %w", err)
	}
	return nil
}

func encodeTimeline(items []*domain.Item) (string, error) {
	if items == nil {
		items = []*domain.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding timeline: %w", err)
	}
	return string(b), nil
}

func scanDay(s scanner) (*domain.Day, error) {
	var d domain.Day
	var timeline, updated string
	if err := s.Scan(&d.ID, &d.TripID, &d.Date, &d.Index, &timeline, &d.Revision, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("day: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning day: %w", err)
	}
	if err := json.Unmarshal([]byte(timeline), &d.Timeline); err != nil {
		return nil, fmt.Errorf("decoding timeline of day %s: %w", d.Date, err)
	}
	if d.Timeline == nil {
		d.Timeline = []*domain.Item{}
	}
	d.UpdatedAt = parseTimestamp(updated)
	return &d, nil
}
