package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/repository"
	"github.com/Lucasteisouza/shopper-ride/internal/service"
)

// ErrorResponse is the error contract of the API: a stable code plus a
// human-readable description. Internal detail never leaves the process.
type ErrorResponse struct {
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}

// respondError maps a workflow error to an HTTP status and the error body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(statusForCode(svcErr.Code), ErrorResponse{
			ErrorCode:        string(svcErr.Code),
			ErrorDescription: svcErr.Message,
		})
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			ErrorCode:        string(service.CodeRideNotFound),
			ErrorDescription: "entity not found",
		})
		return
	}

	logger.Error("unclassified error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		ErrorCode:        string(service.CodeInternal),
		ErrorDescription: "an unexpected error occurred",
	})
}

// respondInvalidBody reports a request body that failed to bind.
func respondInvalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		ErrorCode:        string(service.CodeInvalidData),
		ErrorDescription: "invalid request body",
	})
}

func statusForCode(code service.ErrorCode) int {
	switch code {
	case service.CodeInvalidData, service.CodeProviderDenied:
		return http.StatusBadRequest
	case service.CodeDriverNotFound,
		service.CodeNoDriversAvailable,
		service.CodeNoRidesFound,
		service.CodeRideNotFound:
		return http.StatusNotFound
	case service.CodeInvalidDistance:
		return http.StatusNotAcceptable
	case service.CodeRideCompleted:
		return http.StatusConflict
	case service.CodeProviderFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
