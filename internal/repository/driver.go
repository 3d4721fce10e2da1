package repository

import (
	"context"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetAll retrieves all drivers ordered by rate per km ascending.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// FindByMinDistanceAtMost retrieves drivers whose minimum distance is at
	// most km, ordered by rate per km ascending.
	FindByMinDistanceAtMost(ctx context.Context, km float64) ([]*domain.Driver, error)

	// Count returns the number of drivers.
	Count(ctx context.Context) (int, error)
}
