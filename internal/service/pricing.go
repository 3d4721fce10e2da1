package service

import (
	"math"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
)

// DriverOption is a priced driver choice within an estimate.
type DriverOption struct {
	Driver *domain.Driver
	Value  float64
}

// quoteValue prices a route for a driver: distance times rate, rounded to
// two decimal places.
func quoteValue(distanceKm float64, ratePerKm float64) float64 {
	return math.Round(distanceKm*ratePerKm*100) / 100
}

// priceOptions computes the value for each eligible driver. The input slice
// arrives ordered by rate per km ascending and the ordering is preserved.
func priceOptions(distanceKm int, drivers []*domain.Driver) []DriverOption {
	options := make([]DriverOption, 0, len(drivers))
	for _, driver := range drivers {
		options = append(options, DriverOption{
			Driver: driver,
			Value:  quoteValue(float64(distanceKm), driver.RatePerKm),
		})
	}
	return options
}
