package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `id, name, description, vehicle, rate_per_km, min_distance_km, rating, review_comment`

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `INSERT INTO drivers (id, name, description, vehicle, rate_per_km, min_distance_km, rating, review_comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.Description,
		driver.Vehicle,
		driver.RatePerKm,
		driver.MinDistanceKm,
		driver.Rating,
		driver.ReviewComment,
	)
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

// GetAll retrieves all drivers ordered by rate per km ascending.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY rate_per_km ASC`
	return r.queryDrivers(ctx, query)
}

// FindByMinDistanceAtMost retrieves drivers eligible for a route of km
// kilometers, cheapest rate first.
func (r *DriverRepository) FindByMinDistanceAtMost(ctx context.Context, km float64) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE min_distance_km <= $1 ORDER BY rate_per_km ASC`
	return r.queryDrivers(ctx, query, km)
}

// Count returns the number of drivers.
func (r *DriverRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM drivers`).Scan(&count)
	return count, err
}

func (r *DriverRepository) queryDrivers(ctx context.Context, query string, args ...any) ([]*domain.Driver, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDriver(s scanner) (*domain.Driver, error) {
	var driver domain.Driver
	err := s.Scan(
		&driver.ID,
		&driver.Name,
		&driver.Description,
		&driver.Vehicle,
		&driver.RatePerKm,
		&driver.MinDistanceKm,
		&driver.Rating,
		&driver.ReviewComment,
	)
	if err != nil {
		return nil, err
	}
	return &driver, nil
}
