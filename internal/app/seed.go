package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/repository"
)

// Initial driver catalog, inserted on first boot against an empty table.
var seedDrivers = []domain.Driver{
	{
		Name:          "John Doe",
		Description:   "Experienced driver with 5 years of service",
		Vehicle:       "Toyota Corolla",
		RatePerKm:     2.5,
		MinDistanceKm: 3,
		Rating:        4.8,
		ReviewComment: "Great driver, very punctual",
	},
	{
		Name:          "Jane Smith",
		Description:   "Professional driver with excellent customer service",
		Vehicle:       "Honda Civic",
		RatePerKm:     2.8,
		MinDistanceKm: 2,
		Rating:        4.9,
		ReviewComment: "Very professional and friendly",
	},
}

// SeedDrivers inserts the initial driver catalog when the table is empty.
// Drivers are immutable after seeding; reruns are no-ops.
func SeedDrivers(ctx context.Context, driverRepo repository.DriverRepository, logger *zap.Logger) error {
	count, err := driverRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count drivers: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, d := range seedDrivers {
		driver := d
		driver.ID = uuid.New().String()
		if err := driverRepo.Create(ctx, &driver); err != nil {
			return fmt.Errorf("seed driver %s: %w", driver.Name, err)
		}
	}

	logger.Info("seeded initial drivers", zap.Int("count", len(seedDrivers)))
	return nil
}
