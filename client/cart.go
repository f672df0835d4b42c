package client

import (
	"context"
	"net/http"
	"time"

	"detailing/models"
)

// CartResponse is the wire form of a cart. Pointers distinguish absent fields from empty ones.
type CartResponse struct {
	Services         *[]models.Service   `json:"services,omitempty"`
	BusyTimes        *[]models.TimeRange `json:"busyTimes,omitempty"`
	SelectedDateTime *time.Time          `json:"selectedDateTime,omitempty"`
}

// GetCart fetches the caller's cart.
func (c *Client) GetCart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, "get cart", http.MethodGet, "/api/cart", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart adds svc to the caller's cart and returns the updated cart.
func (c *Client) AddToCart(ctx context.Context, svc models.Service) (*CartResponse, error) {
	var out CartResponse
	body := map[string]any{"service": svc}
	if err := c.do(ctx, "add to cart", http.MethodPost, "/api/cart", body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFromCart removes the service with serviceID and returns the updated cart.
func (c *Client) RemoveFromCart(ctx context.Context, serviceID string) (*CartResponse, error) {
	var out CartResponse
	body := models.RemoveFromCartRequest{ID: serviceID}
	if err := c.do(ctx, "remove from cart", http.MethodDelete, "/api/cart", body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearCart empties the caller's cart.
func (c *Client) ClearCart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, "clear cart", http.MethodDelete, "/api/cart/clear", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectDateTime stores the requested appointment start on the cart.
func (c *Client) SelectDateTime(ctx context.Context, at time.Time) (*CartResponse, error) {
	var out CartResponse
	body := models.SelectDateTimeRequest{SelectedDateTime: at}
	if err := c.do(ctx, "select date time", http.MethodPut, "/api/cart/datetime", body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
