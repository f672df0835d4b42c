package handlers

import (
	"net/http"

	"detailing/middleware"
	"detailing/models"
	"detailing/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves /api/bookings.
type BookingHandler struct {
	BookingSvc booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingSvc: svc}
}

// GetBusyTimes handles POST /api/bookings/busyTimes.
func (h *BookingHandler) GetBusyTimes(c *gin.Context) {
	var req models.BusyTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	busy, err := h.BookingSvc.BusyTimes(c.Request.Context(), req)
	if err != nil {
		respondError(c, "GetBusyTimes: failed to compute busy times", "failed to compute busy times", err)
		return
	}
	c.JSON(http.StatusOK, busy)
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	userID := c.GetString(middleware.ContextUserID)
	b, err := h.BookingSvc.BookCart(c.Request.Context(), userID, req.CustomerLocation)
	if err != nil {
		respondError(c, "CreateBooking: failed to book cart", "failed to create booking", err)
		return
	}
	getLogger(c).Info("CreateBooking: booking confirmed", zap.String("bookingID", b.ID))
	c.JSON(http.StatusCreated, b)
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	bookings, err := h.BookingSvc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "ListBookings: failed to list bookings", "failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
