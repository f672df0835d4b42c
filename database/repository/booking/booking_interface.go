package bookingRepo

import (
	"context"
	"time"

	"detailing/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking. It returns database.ErrNotFound when missing.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByUser retrieves a user's bookings, newest first.
	GetByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// GetActiveBetween retrieves confirmed bookings overlapping [from, to).
	GetActiveBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	// CompleteEndedBefore marks confirmed bookings that ended before t as completed
	// and returns how many changed.
	CompleteEndedBefore(ctx context.Context, t time.Time) (int64, error)
	// AddPicture appends a picture to the booking's before or after list.
	AddPicture(ctx context.Context, bookingID string, kind models.PictureKind, picture models.Picture) (*models.Booking, error)
	// RemovePicture pulls a picture by public ID from the booking's before or after list.
	RemovePicture(ctx context.Context, bookingID string, kind models.PictureKind, publicID string) (*models.Booking, error)
}
