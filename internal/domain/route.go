package domain

// Waypoint is a geocoded endpoint of a route.
type Waypoint struct {
	Address string
	Lat     float64
	Lng     float64
}

// Route is the normalized result of a routing-provider call.
// DistanceKm is the ceiling of the provider's distance in meters / 1000.
type Route struct {
	DistanceKm  int
	Duration    string
	Origin      Waypoint
	Destination Waypoint
}
