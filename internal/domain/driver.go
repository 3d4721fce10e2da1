package domain

// Driver represents a driver available for booking.
// Drivers are seeded once at startup and never mutated by the workflow.
type Driver struct {
	ID            string
	Name          string
	Description   string
	Vehicle       string
	RatePerKm     float64
	MinDistanceKm int
	Rating        float64
	ReviewComment string
}
