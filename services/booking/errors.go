package booking

import "errors"

var (
	// ErrNoDuration is returned when neither an explicit duration nor known service names are given.
	ErrNoDuration = errors.New("expected time to complete is unknown")
	// ErrEmptyCart is returned when booking a cart without services.
	ErrEmptyCart = errors.New("cart has no services")
	// ErrNoDateTime is returned when booking a cart without a selected date/time.
	ErrNoDateTime = errors.New("cart has no selected date/time")
	// ErrSlotUnavailable is returned when the selected start falls in a busy interval.
	ErrSlotUnavailable = errors.New("selected time is unavailable")
	// ErrNoLocation is returned when booking without a customer location.
	ErrNoLocation = errors.New("customer location is required")
	// ErrBookingNotFound is returned when a booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")
)
