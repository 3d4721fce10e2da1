package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, customer_id, origin, destination, distance_km, duration, value, driver_id,
			origin_lat, origin_lng, destination_lat, destination_lng, status, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	var completedAt sql.NullTime
	if !ride.CompletedAt.IsZero() {
		completedAt = sql.NullTime{Time: ride.CompletedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.CustomerID,
		ride.Origin,
		ride.Destination,
		ride.DistanceKm,
		ride.Duration,
		ride.Value,
		ride.DriverID,
		ride.OriginLat,
		ride.OriginLng,
		ride.DestinationLat,
		ride.DestinationLng,
		ride.Status,
		ride.CreatedAt,
		completedAt,
	)
	return err
}

const rideColumns = `
	r.id, r.customer_id, r.origin, r.destination, r.distance_km, r.duration, r.value, r.driver_id,
	d.name, r.origin_lat, r.origin_lng, r.destination_lat, r.destination_lng, r.status, r.created_at, r.completed_at
`

// GetByID retrieves a ride by ID with its driver name.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides r JOIN drivers d ON d.id = r.driver_id WHERE r.id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// Update updates an existing ride. Only status and completion time change
// after confirmation; everything else on a ride is immutable.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `UPDATE rides SET status = $1, completed_at = $2 WHERE id = $3`

	var completedAt sql.NullTime
	if !ride.CompletedAt.IsZero() {
		completedAt = sql.NullTime{Time: ride.CompletedAt, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query, ride.Status, completedAt, ride.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FindByCustomer retrieves a customer's rides newest-first, optionally
// narrowed to one driver.
func (r *RideRepository) FindByCustomer(ctx context.Context, customerID, driverID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides r JOIN drivers d ON d.id = r.driver_id WHERE r.customer_id = $1`
	args := []any{customerID}

	if driverID != "" {
		query += ` AND r.driver_id = $2`
		args = append(args, driverID)
	}
	query += ` ORDER BY r.created_at DESC`

	return r.queryRides(ctx, query, args...)
}

// FindByStatus retrieves rides with the given status newest-first.
func (r *RideRepository) FindByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides r JOIN drivers d ON d.id = r.driver_id WHERE r.status = $1 ORDER BY r.created_at DESC`
	return r.queryRides(ctx, query, status)
}

func (r *RideRepository) queryRides(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

func scanRide(s scanner) (*domain.Ride, error) {
	var ride domain.Ride
	var completedAt sql.NullTime

	err := s.Scan(
		&ride.ID,
		&ride.CustomerID,
		&ride.Origin,
		&ride.Destination,
		&ride.DistanceKm,
		&ride.Duration,
		&ride.Value,
		&ride.DriverID,
		&ride.DriverName,
		&ride.OriginLat,
		&ride.OriginLng,
		&ride.DestinationLat,
		&ride.DestinationLng,
		&ride.Status,
		&ride.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		ride.CompletedAt = completedAt.Time
	}
	return &ride, nil
}
