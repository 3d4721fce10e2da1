package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/repository"
)

// DriverHandler handles HTTP requests for the driver catalog.
type DriverHandler struct {
	driverRepo repository.DriverRepository
	logger     *zap.Logger
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverRepo repository.DriverRepository, logger *zap.Logger) *DriverHandler {
	return &DriverHandler{driverRepo: driverRepo, logger: logger}
}

// DriverResponse is one driver in the catalog listing.
type DriverResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Vehicle       string         `json:"vehicle"`
	RatePerKm     float64        `json:"rate_per_km"`
	MinDistanceKm int            `json:"min_distance_km"`
	Review        ReviewResponse `json:"review"`
}

// GetAll handles GET /drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, DriverResponse{
			ID:            d.ID,
			Name:          d.Name,
			Description:   d.Description,
			Vehicle:       d.Vehicle,
			RatePerKm:     d.RatePerKm,
			MinDistanceKm: d.MinDistanceKm,
			Review:        ReviewResponse{Rating: d.Rating, Comment: d.ReviewComment},
		})
	}
	c.JSON(http.StatusOK, gin.H{"drivers": response})
}
