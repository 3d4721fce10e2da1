package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/maps"
	"github.com/Lucasteisouza/shopper-ride/internal/observability"
	"github.com/Lucasteisouza/shopper-ride/internal/repository"
)

// RouteProvider supplies distance, duration and geocoordinates for an
// address pair.
type RouteProvider interface {
	CalculateRoute(ctx context.Context, origin, destination string) (*domain.Route, error)
}

// EventPublisher broadcasts ride lifecycle events. Delivery failures never
// fail the workflow.
type EventPublisher interface {
	RideConfirmed(ctx context.Context, ride *domain.Ride) error
	RideCompleted(ctx context.Context, ride *domain.Ride) error
}

// RideService orchestrates estimation, confirmation, history lookup and
// completion of rides.
type RideService struct {
	driverRepo repository.DriverRepository
	rideRepo   repository.RideRepository
	routes     RouteProvider
	events     EventPublisher
	logger     *zap.Logger
}

// NewRideService creates a new RideService. events may be nil.
func NewRideService(
	driverRepo repository.DriverRepository,
	rideRepo repository.RideRepository,
	routes RouteProvider,
	events EventPublisher,
	logger *zap.Logger,
) *RideService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RideService{
		driverRepo: driverRepo,
		rideRepo:   rideRepo,
		routes:     routes,
		events:     events,
		logger:     logger,
	}
}

// EstimateRequest contains the parameters for estimating a ride.
type EstimateRequest struct {
	CustomerID  string
	Origin      string
	Destination string
}

// EstimateResult is a priced list of driver options for a route, not yet
// persisted.
type EstimateResult struct {
	Route   *domain.Route
	Options []DriverOption // ordered by rate per km ascending
}

// Estimate validates the request, resolves the route and prices every
// eligible driver for it.
func (s *RideService) Estimate(ctx context.Context, req EstimateRequest) (*EstimateResult, error) {
	if err := validateCustomerID(req.CustomerID); err != nil {
		return nil, err
	}
	if err := validateAddresses(req.Origin, req.Destination); err != nil {
		return nil, err
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)

	route, err := s.routes.CalculateRoute(ctx, origin, destination)
	if err != nil {
		return nil, s.classifyProviderError(err)
	}

	drivers, err := s.driverRepo.FindByMinDistanceAtMost(ctx, float64(route.DistanceKm))
	if err != nil {
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, newError(CodeNoDriversAvailable, "no available drivers for this route")
	}

	observability.EstimatesTotal.Inc()
	return &EstimateResult{
		Route:   route,
		Options: priceOptions(route.DistanceKm, drivers),
	}, nil
}

// ConfirmRequest contains the parameters for confirming a ride. Distance,
// duration and value come from a previously served estimate and are trusted
// for the monetary record after structural checks only.
type ConfirmRequest struct {
	CustomerID  string
	Origin      string
	Destination string
	DistanceKm  float64
	Duration    string
	DriverID    string
	Value       float64
}

// ConfirmResult contains the persisted ride and its driver.
type ConfirmResult struct {
	Ride   *domain.Ride
	Driver *domain.Driver
}

// Confirm turns a chosen estimate option into a persisted, active ride.
// Coordinates always come fresh from the routing provider: the addresses are
// the source of truth, not client-computed geometry.
func (s *RideService) Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResult, error) {
	if err := validateCustomerID(req.CustomerID); err != nil {
		return nil, err
	}
	if err := validateAddresses(req.Origin, req.Destination); err != nil {
		return nil, err
	}
	if req.DistanceKm <= 0 {
		return nil, invalidData("invalid distance value")
	}
	if req.Value <= 0 {
		return nil, invalidData("invalid ride value")
	}
	if req.DriverID == "" {
		return nil, invalidData("driver information is required")
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(CodeDriverNotFound, "selected driver not found")
		}
		return nil, err
	}

	if req.DistanceKm < float64(driver.MinDistanceKm) {
		return nil, newError(CodeInvalidDistance,
			fmt.Sprintf("distance is below driver minimum of %dkm", driver.MinDistanceKm))
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)

	route, err := s.routes.CalculateRoute(ctx, origin, destination)
	if err != nil {
		return nil, s.classifyProviderError(err)
	}

	ride := &domain.Ride{
		ID:             uuid.New().String(),
		CustomerID:     req.CustomerID,
		Origin:         origin,
		Destination:    destination,
		DistanceKm:     req.DistanceKm,
		Duration:       req.Duration,
		Value:          req.Value,
		DriverID:       driver.ID,
		DriverName:     driver.Name,
		OriginLat:      route.Origin.Lat,
		OriginLng:      route.Origin.Lng,
		DestinationLat: route.Destination.Lat,
		DestinationLng: route.Destination.Lng,
		Status:         domain.RideStatusActive,
		CreatedAt:      time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	observability.ConfirmationsTotal.Inc()
	s.logger.Info("ride confirmed",
		zap.String("ride_id", ride.ID),
		zap.String("customer_id", ride.CustomerID),
		zap.String("driver_id", driver.ID),
		zap.Float64("value", ride.Value),
	)

	if s.events != nil {
		if err := s.events.RideConfirmed(ctx, ride); err != nil {
			s.logger.Warn("publish ride confirmed event failed", zap.Error(err))
		}
	}

	return &ConfirmResult{Ride: ride, Driver: driver}, nil
}

// GetHistory returns a customer's rides ordered newest-first, optionally
// narrowed to a single driver. An empty result is a reported condition, not
// a zero-length success.
func (s *RideService) GetHistory(ctx context.Context, customerID, driverID string) ([]*domain.Ride, error) {
	if err := validateCustomerID(customerID); err != nil {
		return nil, err
	}

	if driverID != "" {
		if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, newError(CodeDriverNotFound, "specified driver not found")
			}
			return nil, err
		}
	}

	rides, err := s.rideRepo.FindByCustomer(ctx, customerID, driverID)
	if err != nil {
		return nil, err
	}
	if len(rides) == 0 {
		return nil, newError(CodeNoRidesFound, "no rides found for this customer")
	}
	return rides, nil
}

// GetActiveRides returns all active rides ordered newest-first.
func (s *RideService) GetActiveRides(ctx context.Context) ([]*domain.Ride, error) {
	rides, err := s.rideRepo.FindByStatus(ctx, domain.RideStatusActive)
	if err != nil {
		return nil, err
	}
	if len(rides) == 0 {
		return nil, newError(CodeNoRidesFound, "no active rides found")
	}
	return rides, nil
}

// Complete transitions an active ride to completed and stamps the completion
// time. Completing an already-completed ride is an error; completed rides
// are immutable.
func (s *RideService) Complete(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, invalidData("ride id is required")
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(CodeRideNotFound, "ride not found")
		}
		return nil, err
	}

	if ride.Status == domain.RideStatusCompleted {
		return nil, newError(CodeRideCompleted, "ride is already completed")
	}

	ride.Status = domain.RideStatusCompleted
	ride.CompletedAt = time.Now()

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(CodeRideNotFound, "ride not found")
		}
		return nil, err
	}

	observability.CompletionsTotal.Inc()
	s.logger.Info("ride completed", zap.String("ride_id", ride.ID))

	if s.events != nil {
		if err := s.events.RideCompleted(ctx, ride); err != nil {
			s.logger.Warn("publish ride completed event failed", zap.Error(err))
		}
	}

	return ride, nil
}

// classifyProviderError maps routing-provider failures onto the workflow
// error taxonomy: request rejections surface as caller errors, everything
// else as a provider failure.
func (s *RideService) classifyProviderError(err error) error {
	var provErr *maps.Error
	if errors.As(err, &provErr) {
		if provErr.NotRetryable {
			return newError(CodeProviderDenied, provErr.Message)
		}
		return newError(CodeProviderFailure, provErr.Message)
	}
	return newError(CodeProviderFailure, "failed to calculate route")
}
