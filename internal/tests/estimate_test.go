package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/maps"
	"github.com/Lucasteisouza/shopper-ride/internal/service"
)

func newTestRoute(distanceKm int) *domain.Route {
	return &domain.Route{
		DistanceKm: distanceKm,
		Duration:   "25 mins",
		Origin: domain.Waypoint{
			Address: "Av. Paulista, 1000 - Sao Paulo",
			Lat:     -23.5614,
			Lng:     -46.6559,
		},
		Destination: domain.Waypoint{
			Address: "Rua Augusta, 500 - Sao Paulo",
			Lat:     -23.5505,
			Lng:     -46.6489,
		},
	}
}

func newEstimateService(route *domain.Route, drivers ...*domain.Driver) (*service.RideService, *MockRideRepository, *MockRouteProvider) {
	driverRepo := NewMockDriverRepository()
	for _, d := range drivers {
		driverRepo.AddDriver(d)
	}
	rideRepo := NewMockRideRepository()
	provider := NewMockRouteProvider(route)
	svc := service.NewRideService(driverRepo, rideRepo, provider, NewMockEventPublisher(), nil)
	return svc, rideRepo, provider
}

func assertCode(t *testing.T, err error, code service.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, code, svcErr.Code)
}

func TestEstimate_Success(t *testing.T) {
	cheap := &domain.Driver{ID: "d1", Name: "Jane Smith", RatePerKm: 2.8, MinDistanceKm: 2}
	pricey := &domain.Driver{ID: "d2", Name: "John Doe", RatePerKm: 2.5, MinDistanceKm: 3}
	svc, _, provider := newEstimateService(newTestRoute(10), cheap, pricey)

	result, err := svc.Estimate(context.Background(), service.EstimateRequest{
		CustomerID:  "customer-1",
		Origin:      "  Av. Paulista, 1000  ",
		Destination: "Rua Augusta, 500",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 10, result.Route.DistanceKm)
	assert.Equal(t, "25 mins", result.Route.Duration)

	// Options come back cheapest first, priced as distance * rate.
	require.Len(t, result.Options, 2)
	assert.Equal(t, "John Doe", result.Options[0].Driver.Name)
	assert.Equal(t, 25.0, result.Options[0].Value)
	assert.Equal(t, "Jane Smith", result.Options[1].Driver.Name)
	assert.Equal(t, 28.0, result.Options[1].Value)

	// Addresses are trimmed before reaching the provider.
	assert.Equal(t, "Av. Paulista, 1000", provider.LastOrigin)
	assert.Equal(t, "Rua Augusta, 500", provider.LastDestination)
}

func TestEstimate_FiltersDriversByMinDistance(t *testing.T) {
	near := &domain.Driver{ID: "d1", Name: "John Doe", RatePerKm: 2.5, MinDistanceKm: 3}
	far := &domain.Driver{ID: "d2", Name: "Long Hauler", RatePerKm: 5.0, MinDistanceKm: 15}
	svc, _, _ := newEstimateService(newTestRoute(10), near, far)

	result, err := svc.Estimate(context.Background(), service.EstimateRequest{
		CustomerID:  "customer-1",
		Origin:      "A",
		Destination: "B",
	})
	require.NoError(t, err)

	require.Len(t, result.Options, 1)
	assert.Equal(t, "John Doe", result.Options[0].Driver.Name)
	assert.Equal(t, 25.0, result.Options[0].Value)
}

func TestEstimate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  service.EstimateRequest
	}{
		{
			name: "empty customer id",
			req:  service.EstimateRequest{CustomerID: "", Origin: "A", Destination: "B"},
		},
		{
			name: "customer id with invalid characters",
			req:  service.EstimateRequest{CustomerID: "user_123!", Origin: "A", Destination: "B"},
		},
		{
			name: "empty origin",
			req:  service.EstimateRequest{CustomerID: "customer-1", Origin: "", Destination: "B"},
		},
		{
			name: "empty destination",
			req:  service.EstimateRequest{CustomerID: "customer-1", Origin: "A", Destination: ""},
		},
		{
			name: "same origin and destination",
			req:  service.EstimateRequest{CustomerID: "customer-1", Origin: "Av. Paulista", Destination: "Av. Paulista"},
		},
		{
			name: "same addresses after trimming",
			req:  service.EstimateRequest{CustomerID: "customer-1", Origin: " Av. Paulista ", Destination: "Av. Paulista"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, provider := newEstimateService(newTestRoute(10))
			_, err := svc.Estimate(context.Background(), tt.req)
			assertCode(t, err, service.CodeInvalidData)
			assert.Zero(t, provider.CallCount, "provider must not be called for invalid input")
		})
	}
}

func TestEstimate_NoDriversAvailable(t *testing.T) {
	far := &domain.Driver{ID: "d1", Name: "Long Hauler", RatePerKm: 5.0, MinDistanceKm: 15}
	svc, _, _ := newEstimateService(newTestRoute(10), far)

	_, err := svc.Estimate(context.Background(), service.EstimateRequest{
		CustomerID:  "customer-1",
		Origin:      "A",
		Destination: "B",
	})
	assertCode(t, err, service.CodeNoDriversAvailable)
}

func TestEstimate_ProviderDenied(t *testing.T) {
	svc, _, provider := newEstimateService(nil)
	provider.Err = &maps.Error{Message: "the routing API key is not properly configured", NotRetryable: true}

	_, err := svc.Estimate(context.Background(), service.EstimateRequest{
		CustomerID:  "customer-1",
		Origin:      "A",
		Destination: "B",
	})
	assertCode(t, err, service.CodeProviderDenied)
}

func TestEstimate_ProviderFailure(t *testing.T) {
	svc, _, provider := newEstimateService(nil)
	provider.Err = errors.New("connection refused")

	_, err := svc.Estimate(context.Background(), service.EstimateRequest{
		CustomerID:  "customer-1",
		Origin:      "A",
		Destination: "B",
	})
	assertCode(t, err, service.CodeProviderFailure)
}
