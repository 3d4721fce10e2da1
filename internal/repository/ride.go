package repository

import (
	"context"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// Update updates an existing ride.
	Update(ctx context.Context, ride *domain.Ride) error

	// FindByCustomer retrieves rides for a customer ordered by creation time
	// descending. driverID narrows the result when non-empty.
	FindByCustomer(ctx context.Context, customerID, driverID string) ([]*domain.Ride, error)

	// FindByStatus retrieves rides with the given status ordered by creation
	// time descending.
	FindByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error)
}
