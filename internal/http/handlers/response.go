package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-service/internal/service"
)

// APIResponse is the success envelope: {success, message, data}.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// APIErrorResponse is the error envelope with a stable error code per status.
type APIErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Path       string `json:"path"`
	Timestamp  string `json:"timestamp"`
}

func writeSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, APIErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
		Path:       c.Request.URL.Path,
		Timestamp:  time.Now().Format(time.RFC3339),
	})
}

// writeServiceError maps business errors to 4xx responses. Anything outside
// the taxonomy is an infrastructure fault: logged and answered with a bare 500.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInterval),
		errors.Is(err, service.ErrDuplicateSlot),
		errors.Is(err, service.ErrOverlappingSlot),
		errors.Is(err, service.ErrSlotAlreadyBooked),
		errors.Is(err, service.ErrBookingAlreadyCanceled):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotBookingOwner):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrLockTimeout):
		writeError(c, http.StatusConflict, err.Error())
	default:
		logger.Error("Request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		writeError(c, http.StatusInternalServerError, "internal server error")
	}
}
