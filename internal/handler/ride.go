package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
	logger      *zap.Logger
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, logger *zap.Logger) *RideHandler {
	return &RideHandler{rideService: rideService, logger: logger}
}

// EstimateRequest is the HTTP request body for estimating a ride.
type EstimateRequest struct {
	CustomerID  string `json:"customer_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// WaypointResponse is a geocoded route endpoint.
type WaypointResponse struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReviewResponse is a driver's rating and review comment.
type ReviewResponse struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// OptionResponse is one priced driver option within an estimate.
type OptionResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Vehicle     string         `json:"vehicle"`
	Review      ReviewResponse `json:"review"`
	Value       float64        `json:"value"`
}

// EstimateResponse is the HTTP response for an estimate.
type EstimateResponse struct {
	Origin      WaypointResponse `json:"origin"`
	Destination WaypointResponse `json:"destination"`
	Distance    int              `json:"distance"`
	Duration    string           `json:"duration"`
	Options     []OptionResponse `json:"options"`
}

// Estimate handles POST /ride/estimate
func (h *RideHandler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	result, err := h.rideService.Estimate(c.Request.Context(), service.EstimateRequest{
		CustomerID:  req.CustomerID,
		Origin:      req.Origin,
		Destination: req.Destination,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	options := make([]OptionResponse, 0, len(result.Options))
	for _, opt := range result.Options {
		options = append(options, OptionResponse{
			ID:          opt.Driver.ID,
			Name:        opt.Driver.Name,
			Description: opt.Driver.Description,
			Vehicle:     opt.Driver.Vehicle,
			Review: ReviewResponse{
				Rating:  opt.Driver.Rating,
				Comment: opt.Driver.ReviewComment,
			},
			Value: opt.Value,
		})
	}

	c.JSON(http.StatusOK, EstimateResponse{
		Origin:      toWaypointResponse(result.Route.Origin),
		Destination: toWaypointResponse(result.Route.Destination),
		Distance:    result.Route.DistanceKm,
		Duration:    result.Route.Duration,
		Options:     options,
	})
}

// ConfirmRequest is the HTTP request body for confirming a ride.
type ConfirmRequest struct {
	CustomerID  string  `json:"customer_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
	Duration    string  `json:"duration"`
	Driver      struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"driver"`
	Value float64 `json:"value"`
}

// ConfirmDriverResponse identifies the driver of a confirmed ride.
type ConfirmDriverResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Vehicle string `json:"vehicle"`
}

// ConfirmResponse is the HTTP response for a confirmed ride.
type ConfirmResponse struct {
	RideID string                `json:"ride_id"`
	Status string                `json:"status"`
	Driver ConfirmDriverResponse `json:"driver"`
}

// Confirm handles POST /ride/confirm
func (h *RideHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	result, err := h.rideService.Confirm(c.Request.Context(), service.ConfirmRequest{
		CustomerID:  req.CustomerID,
		Origin:      req.Origin,
		Destination: req.Destination,
		DistanceKm:  req.Distance,
		Duration:    req.Duration,
		DriverID:    req.Driver.ID,
		Value:       req.Value,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ConfirmResponse{
		RideID: result.Ride.ID,
		Status: string(result.Ride.Status),
		Driver: ConfirmDriverResponse{
			ID:      result.Driver.ID,
			Name:    result.Driver.Name,
			Vehicle: result.Driver.Vehicle,
		},
	})
}

// RideDriverResponse identifies the driver of a ride in listings.
type RideDriverResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RideResponse is one ride in a history or active listing.
type RideResponse struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id,omitempty"`
	Date        time.Time          `json:"date"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	Distance    float64            `json:"distance"`
	Duration    string             `json:"duration"`
	Driver      RideDriverResponse `json:"driver"`
	Value       float64            `json:"value"`
	Status      string             `json:"status"`
}

// HistoryResponse is the HTTP response for a customer's ride history.
type HistoryResponse struct {
	CustomerID string         `json:"customer_id"`
	Rides      []RideResponse `json:"rides"`
}

// History handles GET /ride/history/:customer_id
func (h *RideHandler) History(c *gin.Context) {
	customerID := c.Param("customer_id")
	driverID := c.Query("driver_id")

	rides, err := h.rideService.GetHistory(c.Request.Context(), customerID, driverID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := HistoryResponse{CustomerID: customerID, Rides: make([]RideResponse, 0, len(rides))}
	for _, ride := range rides {
		response.Rides = append(response.Rides, toRideResponse(ride, false))
	}
	c.JSON(http.StatusOK, response)
}

// ActiveRidesResponse is the HTTP response for the active ride listing.
type ActiveRidesResponse struct {
	Rides []RideResponse `json:"rides"`
}

// Active handles GET /ride/active
func (h *RideHandler) Active(c *gin.Context) {
	rides, err := h.rideService.GetActiveRides(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := ActiveRidesResponse{Rides: make([]RideResponse, 0, len(rides))}
	for _, ride := range rides {
		response.Rides = append(response.Rides, toRideResponse(ride, true))
	}
	c.JSON(http.StatusOK, response)
}

// CompleteResponse is the HTTP response for a completed ride.
type CompleteResponse struct {
	RideID      string    `json:"ride_id"`
	Status      string    `json:"status"`
	CompletedAt time.Time `json:"completed_at"`
}

// Complete handles POST /ride/:ride_id/complete
func (h *RideHandler) Complete(c *gin.Context) {
	rideID := c.Param("ride_id")

	ride, err := h.rideService.Complete(c.Request.Context(), rideID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, CompleteResponse{
		RideID:      ride.ID,
		Status:      string(ride.Status),
		CompletedAt: ride.CompletedAt,
	})
}

func toWaypointResponse(w domain.Waypoint) WaypointResponse {
	return WaypointResponse{Address: w.Address, Latitude: w.Lat, Longitude: w.Lng}
}

func toRideResponse(ride *domain.Ride, withCustomer bool) RideResponse {
	resp := RideResponse{
		ID:          ride.ID,
		Date:        ride.CreatedAt,
		Origin:      ride.Origin,
		Destination: ride.Destination,
		Distance:    ride.DistanceKm,
		Duration:    ride.Duration,
		Driver:      RideDriverResponse{ID: ride.DriverID, Name: ride.DriverName},
		Value:       ride.Value,
		Status:      string(ride.Status),
	}
	if withCustomer {
		resp.CustomerID = ride.CustomerID
	}
	return resp
}
