package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/app"
	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/handler"
	"github.com/Lucasteisouza/shopper-ride/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	router     *gin.Engine
	driverRepo *MockDriverRepository
	rideRepo   *MockRideRepository
	provider   *MockRouteProvider
}

func newAPIFixture() *apiFixture {
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{
		ID:            "driver-1",
		Name:          "John Doe",
		Description:   "Experienced driver with 5 years of service",
		Vehicle:       "Toyota Corolla",
		RatePerKm:     2.5,
		MinDistanceKm: 3,
		Rating:        4.8,
		ReviewComment: "Great driver, very punctual",
	})
	rideRepo := NewMockRideRepository()
	provider := NewMockRouteProvider(newTestRoute(10))
	logger := zap.NewNop()

	svc := service.NewRideService(driverRepo, rideRepo, provider, NewMockEventPublisher(), logger)
	router := app.NewRouter(app.RouterDeps{
		RideHandler:   handler.NewRideHandler(svc, logger),
		DriverHandler: handler.NewDriverHandler(driverRepo, logger),
		Logger:        logger,
	})

	return &apiFixture{
		router:     router,
		driverRepo: driverRepo,
		rideRepo:   rideRepo,
		provider:   provider,
	}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAPI_Estimate(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodPost, "/ride/estimate", gin.H{
		"customer_id": "customer-1",
		"origin":      "Av. Paulista, 1000",
		"destination": "Rua Augusta, 500",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.EstimateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Distance)
	assert.Equal(t, "25 mins", resp.Duration)
	assert.Equal(t, -23.5614, resp.Origin.Latitude)
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "driver-1", resp.Options[0].ID)
	assert.Equal(t, "John Doe", resp.Options[0].Name)
	assert.Equal(t, 4.8, resp.Options[0].Review.Rating)
	assert.Equal(t, 25.0, resp.Options[0].Value)
}

func TestAPI_EstimateInvalidBody(t *testing.T) {
	f := newAPIFixture()

	req := httptest.NewRequest(http.MethodPost, "/ride/estimate", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_DATA", resp.ErrorCode)
}

func TestAPI_EstimateSameAddresses(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodPost, "/ride/estimate", gin.H{
		"customer_id": "customer-1",
		"origin":      "Av. Paulista, 1000",
		"destination": "Av. Paulista, 1000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_DATA", resp.ErrorCode)
	assert.NotEmpty(t, resp.ErrorDescription)
}

func TestAPI_Confirm(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodPost, "/ride/confirm", gin.H{
		"customer_id": "customer-1",
		"origin":      "Av. Paulista, 1000",
		"destination": "Rua Augusta, 500",
		"distance":    10,
		"duration":    "25 mins",
		"driver":      gin.H{"id": "driver-1", "name": "John Doe"},
		"value":       25.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp handler.ConfirmResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RideID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "driver-1", resp.Driver.ID)
	assert.Equal(t, "Toyota Corolla", resp.Driver.Vehicle)

	assert.Equal(t, 1, f.rideRepo.CountRides())
}

func TestAPI_ConfirmDistanceBelowMinimum(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodPost, "/ride/confirm", gin.H{
		"customer_id": "customer-1",
		"origin":      "Av. Paulista, 1000",
		"destination": "Rua Augusta, 500",
		"distance":    2,
		"duration":    "8 mins",
		"driver":      gin.H{"id": "driver-1", "name": "John Doe"},
		"value":       5.0,
	})
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_DISTANCE", resp.ErrorCode)
	assert.Equal(t, 0, f.rideRepo.CountRides())
}

func TestAPI_ConfirmUnknownDriver(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodPost, "/ride/confirm", gin.H{
		"customer_id": "customer-1",
		"origin":      "Av. Paulista, 1000",
		"destination": "Rua Augusta, 500",
		"distance":    10,
		"duration":    "25 mins",
		"driver":      gin.H{"id": "nope", "name": "Nobody"},
		"value":       25.0,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "DRIVER_NOT_FOUND", resp.ErrorCode)
}

func TestAPI_History(t *testing.T) {
	f := newAPIFixture()
	seedRide(f.rideRepo, "ride-1", "customer-1", "driver-1", domain.RideStatusCompleted, time.Now())

	w := f.do(t, http.MethodGet, "/ride/history/customer-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "customer-1", resp.CustomerID)
	require.Len(t, resp.Rides, 1)
	assert.Equal(t, "ride-1", resp.Rides[0].ID)
	assert.Equal(t, "completed", resp.Rides[0].Status)
}

func TestAPI_HistoryNoRides(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodGet, "/ride/history/customer-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "NO_RIDES_FOUND", resp.ErrorCode)
}

func TestAPI_HistoryUnknownDriverFilter(t *testing.T) {
	f := newAPIFixture()
	seedRide(f.rideRepo, "ride-1", "customer-1", "driver-1", domain.RideStatusCompleted, time.Now())

	w := f.do(t, http.MethodGet, "/ride/history/customer-1?driver_id=nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "DRIVER_NOT_FOUND", resp.ErrorCode)
}

func TestAPI_ActiveRides(t *testing.T) {
	f := newAPIFixture()
	seedRide(f.rideRepo, "ride-1", "customer-1", "driver-1", domain.RideStatusActive, time.Now())
	seedRide(f.rideRepo, "ride-2", "customer-2", "driver-1", domain.RideStatusCompleted, time.Now())

	w := f.do(t, http.MethodGet, "/ride/active", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ActiveRidesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rides, 1)
	assert.Equal(t, "ride-1", resp.Rides[0].ID)
	assert.Equal(t, "customer-1", resp.Rides[0].CustomerID)
}

func TestAPI_Complete(t *testing.T) {
	f := newAPIFixture()
	seedRide(f.rideRepo, "ride-1", "customer-1", "driver-1", domain.RideStatusActive, time.Now())

	w := f.do(t, http.MethodPost, "/ride/ride-1/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.CompleteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ride-1", resp.RideID)
	assert.Equal(t, "completed", resp.Status)
	assert.False(t, resp.CompletedAt.IsZero())
}

func TestAPI_CompleteMissingRide(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodPost, "/ride/42/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "NOT_FOUND", resp.ErrorCode)
	assert.Equal(t, "ride not found", resp.ErrorDescription)
}

func TestAPI_CompleteTwiceConflicts(t *testing.T) {
	f := newAPIFixture()
	seedRide(f.rideRepo, "ride-1", "customer-1", "driver-1", domain.RideStatusActive, time.Now())

	w := f.do(t, http.MethodPost, "/ride/ride-1/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/ride/ride-1/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "RIDE_ALREADY_COMPLETED", resp.ErrorCode)
}

func TestAPI_Drivers(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodGet, "/drivers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Drivers []handler.DriverResponse `json:"drivers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Drivers, 1)
	assert.Equal(t, "John Doe", resp.Drivers[0].Name)
}

func TestAPI_Health(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
