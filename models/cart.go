package models

import "time"

// Cart is a customer's selected services and scheduling constraints.
type Cart struct {
	UserID           string      `bson:"user_id" json:"-"`
	Services         []Service   `bson:"services" json:"services"`
	BusyTimes        []TimeRange `bson:"busy_times,omitempty" json:"busyTimes,omitempty"`
	SelectedDateTime *time.Time  `bson:"selected_date_time,omitempty" json:"selectedDateTime,omitempty"`
	UpdatedAt        time.Time   `bson:"updated_at" json:"updatedAt,omitempty"`
}

// NewCart returns an empty cart for userID.
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Services: []Service{}}
}

// Contains reports whether the cart already holds serviceID.
func (c *Cart) Contains(serviceID string) bool {
	for _, s := range c.Services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}

// TotalDuration sums the durations of the services in the cart, in minutes.
func (c *Cart) TotalDuration() int {
	total := 0
	for _, s := range c.Services {
		total += s.Duration
	}
	return total
}

// TotalPrice sums the prices of the services in the cart.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, s := range c.Services {
		total += s.Price
	}
	return total
}

// ServiceRef identifies a service by id in cart requests.
type ServiceRef struct {
	ID string `json:"_id" binding:"required"`
}

// AddToCartRequest is the body of POST /api/cart.
type AddToCartRequest struct {
	Service ServiceRef `json:"service" binding:"required"`
}

// RemoveFromCartRequest is the body of DELETE /api/cart.
type RemoveFromCartRequest struct {
	ID string `json:"_id" binding:"required"`
}

// SelectDateTimeRequest is the body of PUT /api/cart/datetime.
type SelectDateTimeRequest struct {
	SelectedDateTime time.Time `json:"selectedDateTime" binding:"required"`
}
