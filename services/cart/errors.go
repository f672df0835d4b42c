package cart

import "errors"

var (
	// ErrAlreadyInCart is returned when adding a service the cart already holds.
	ErrAlreadyInCart = errors.New("service already in cart")
	// ErrNotInCart is returned when removing a service the cart does not hold.
	ErrNotInCart = errors.New("service not in cart")
	// ErrInvalidDateTime is returned for a zero or past selected date/time.
	ErrInvalidDateTime = errors.New("invalid selected date/time")
)
