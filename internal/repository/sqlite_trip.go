package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tripline/internal/db"
	"github.com/alexanderramin/tripline/internal/domain"
)

// SQLiteTripRepo implements TripRepo using a SQLite database.
type SQLiteTripRepo struct {
	db   db.DBTX
	days *SQLiteDayRepo
}

// NewSQLiteTripRepo creates a new SQLiteTripRepo.
func NewSQLiteTripRepo(conn db.DBTX) *SQLiteTripRepo {
	return &SQLiteTripRepo{db: conn, days: NewSQLiteDayRepo(conn)}
}

// Create inserts the trip row and one row per day. Run it inside a unit
// of work so a failed day insert does not leave a partial trip.
func (r *SQLiteTripRepo) Create(ctx context.Context, t *domain.Trip) error {
	query := `INSERT INTO trips (id, title, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		timestampOrNow(t.CreatedAt),
		timestampOrNow(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting trip: %w", err)
	}
	for _, d := range t.Days {
		if err := r.days.Create(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteTripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT id, title, start_date, end_date, created_at, updated_at FROM trips WHERE id = ?`
	t, err := scanTrip(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	t.Days, err = r.days.ListByTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTripRepo) List(ctx context.Context) ([]*domain.Trip, error) {
	query := `SELECT id, title, start_date, end_date, created_at, updated_at
		FROM trips ORDER BY start_date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trips: %w", err)
	}
	return trips, nil
}

// Update writes the trip row only; days are saved through DayRepo.
func (r *SQLiteTripRepo) Update(ctx context.Context, t *domain.Trip) error {
	query := `UPDATE trips SET title = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		timestampOrNow(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trip %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTripRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (*domain.Trip, error) {
	var t domain.Trip
	var startStr, endStr, createdStr, updatedStr string
	if err := s.Scan(&t.ID, &t.Title, &startStr, &endStr, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trip: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning trip: %w", err)
	}

	var err error
	if t.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if t.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	t.CreatedAt = parseTimestamp(createdStr)
	t.UpdatedAt = parseTimestamp(updatedStr)
	return &t, nil
}
