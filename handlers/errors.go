package handlers

import (
	"errors"
	"net/http"

	"detailing/services/booking"
	"detailing/services/cart"
	"detailing/services/catalog"
	"detailing/services/storage"
	"detailing/services/user"
	"detailing/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service-layer sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, cart.ErrNotInCart),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrPictureNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrAlreadyInCart),
		errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, cart.ErrInvalidDateTime),
		errors.Is(err, booking.ErrNoDuration),
		errors.Is(err, booking.ErrEmptyCart),
		errors.Is(err, booking.ErrNoDateTime),
		errors.Is(err, booking.ErrNoLocation),
		errors.Is(err, catalog.ErrInvalidService):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped status with a standard body.
func respondError(c *gin.Context, op, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		getLogger(c).Error(op, zap.Error(err))
		utils.JSONError(c, status, message, "an unexpected error occurred")
		return
	}
	utils.JSONError(c, status, message, err.Error())
}

func badRequest(c *gin.Context, message string, err error) {
	utils.JSONError(c, http.StatusBadRequest, message, err.Error())
}
