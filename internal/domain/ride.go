package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
)

// Ride represents a confirmed ride in the system.
type Ride struct {
	ID          string
	CustomerID  string
	Origin      string
	Destination string
	DistanceKm  float64
	Duration    string // display string from the routing provider, e.g. "25 mins"
	Value       float64
	DriverID    string
	DriverName  string // filled on joined reads, not a column on the rides table

	// Coordinates captured from the routing provider at confirmation time.
	OriginLat      float64
	OriginLng      float64
	DestinationLat float64
	DestinationLng float64

	Status      RideStatus
	CreatedAt   time.Time
	CompletedAt time.Time // zero while the ride is active
}
