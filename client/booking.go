package client

import (
	"context"
	"net/http"

	"detailing/models"
)

// BusyTimes asks for the intervals during which a new appointment cannot start.
func (c *Client) BusyTimes(ctx context.Context, req models.BusyTimesRequest) ([]models.TimeRange, error) {
	if req.ServiceNames == nil {
		req.ServiceNames = []string{}
	}
	var out []models.TimeRange
	if err := c.do(ctx, "busy times", http.MethodPost, "/api/bookings/busyTimes", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.TimeRange{}
	}
	return out, nil
}

// CreateBooking books the caller's cart at its selected date and time.
func (c *Client) CreateBooking(ctx context.Context, location string) (*models.Booking, error) {
	var out models.Booking
	body := models.CreateBookingRequest{CustomerLocation: location}
	if err := c.do(ctx, "create booking", http.MethodPost, "/api/bookings", body, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBookings returns the caller's bookings.
func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, "list bookings", http.MethodGet, "/api/bookings", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetServices returns the public catalog.
func (c *Client) GetServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := c.do(ctx, "get services", http.MethodGet, "/api/services", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Service{}
	}
	return out, nil
}
