package repository

import (
	"context"

	"github.com/alexanderramin/tripline/internal/domain"
)

type TripRepo interface {
	// Create stores the trip and all of its days.
	Create(ctx context.Context, t *domain.Trip) error
	// GetByID returns the trip with its days ordered by index.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	// List returns trips without their days, newest first.
	List(ctx context.Context) ([]*domain.Trip, error)
	Update(ctx context.Context, t *domain.Trip) error
	Delete(ctx context.Context, id string) error
}

type DayRepo interface {
	Create(ctx context.Context, d *domain.Day) error
	GetByID(ctx context.Context, id string) (*domain.Day, error)
	GetByIndex(ctx context.Context, tripID string, index int) (*domain.Day, error)
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Day, error)
	// Update writes d if the stored revision still equals
	// expectedRevision, and returns ErrConflict otherwise.
	Update(ctx context.Context, d *domain.Day, expectedRevision int64) error
	Delete(ctx context.Context, id string) error
}
