package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"detailing/database"
	bookingRepo "detailing/database/repository/booking"
	"detailing/models"
	"detailing/services/cart"
	"detailing/services/catalog"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService defines booking and availability operations.
type BookingService interface {
	BusyTimes(ctx context.Context, req models.BusyTimesRequest) ([]models.TimeRange, error)
	BookCart(ctx context.Context, userID, customerLocation string) (*models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	Catalog      catalog.CatalogService
	Cart         cart.CartService
	TravelBuffer time.Duration
	Horizon      time.Duration
	Logger       *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time

	// bookMu serializes conflict check and insert within this process.
	bookMu sync.Mutex
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// resolveDuration prefers the explicit figure and otherwise sums catalog durations.
func (s *DefaultBookingService) resolveDuration(ctx context.Context, req models.BusyTimesRequest) (time.Duration, error) {
	if req.ExpectedTimeToComplete > 0 {
		return time.Duration(req.ExpectedTimeToComplete) * time.Minute, nil
	}
	services, err := s.Catalog.ByNames(ctx, req.ServiceNames)
	if err != nil {
		return 0, err
	}
	minutes := 0
	for _, svc := range services {
		minutes += svc.Duration
	}
	if minutes <= 0 {
		return 0, ErrNoDuration
	}
	return time.Duration(minutes) * time.Minute, nil
}

func (s *DefaultBookingService) busyFor(ctx context.Context, location string, duration time.Duration) ([]models.TimeRange, error) {
	from := s.now()
	// A booking that ended within one travel buffer still blocks the near future.
	bookings, err := s.Repo.GetActiveBetween(ctx, from.Add(-s.TravelBuffer), from.Add(s.Horizon))
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return ComputeBusyTimes(bookings, BusyParams{
		Duration:         duration,
		CustomerLocation: location,
		TravelBuffer:     s.TravelBuffer,
	}), nil
}

// busyAround loads only the bookings that could block a slot starting at start,
// however far ahead it is.
func (s *DefaultBookingService) busyAround(ctx context.Context, location string, start time.Time, duration time.Duration) ([]models.TimeRange, error) {
	bookings, err := s.Repo.GetActiveBetween(ctx, start.Add(-duration-s.TravelBuffer), start.Add(duration+s.TravelBuffer))
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return ComputeBusyTimes(bookings, BusyParams{
		Duration:         duration,
		CustomerLocation: location,
		TravelBuffer:     s.TravelBuffer,
	}), nil
}

// BusyTimes answers the busy-time query for a prospective booking.
func (s *DefaultBookingService) BusyTimes(ctx context.Context, req models.BusyTimesRequest) ([]models.TimeRange, error) {
	duration, err := s.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}
	busy, err := s.busyFor(ctx, req.CustomerLocation, duration)
	if err != nil {
		return nil, err
	}
	s.logger().Debug("booking: busy times computed",
		zap.String("location", req.CustomerLocation),
		zap.Duration("duration", duration),
		zap.Int("intervals", len(busy)))
	return busy, nil
}

// BookCart turns the user's cart into a confirmed booking and clears the cart.
func (s *DefaultBookingService) BookCart(ctx context.Context, userID, customerLocation string) (*models.Booking, error) {
	location := strings.TrimSpace(customerLocation)
	if location == "" {
		return nil, ErrNoLocation
	}

	c, err := s.Cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Services) == 0 {
		return nil, ErrEmptyCart
	}
	if c.SelectedDateTime == nil || c.SelectedDateTime.IsZero() {
		return nil, ErrNoDateTime
	}
	start := c.SelectedDateTime.UTC()
	if !start.After(s.now()) {
		return nil, fmt.Errorf("%w: start is in the past", ErrSlotUnavailable)
	}

	duration := time.Duration(c.TotalDuration()) * time.Minute

	s.bookMu.Lock()
	defer s.bookMu.Unlock()
	busy, err := s.busyAround(ctx, location, start, duration)
	if err != nil {
		return nil, err
	}
	for _, r := range busy {
		if r.Contains(start) {
			return nil, fmt.Errorf("%w: %s", ErrSlotUnavailable, start.Format(time.RFC3339))
		}
	}

	b := &models.Booking{
		ID:               uuid.New().String(),
		UserID:           userID,
		Services:         c.Services,
		CustomerLocation: location,
		Start:            start,
		End:              start.Add(duration),
		TotalPrice:       c.TotalPrice(),
		Status:           models.BookingStatusConfirmed,
		BeforePictures:   []models.Picture{},
		AfterPictures:    []models.Picture{},
		CreatedAt:        s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if _, err := s.Cart.Clear(ctx, userID); err != nil {
		s.logger().Error("booking: failed to clear cart after booking", zap.String("bookingID", b.ID), zap.Error(err))
	}
	s.logger().Info("booking: created", zap.String("bookingID", b.ID), zap.String("userID", userID), zap.Time("start", b.Start))
	return b, nil
}

// ListForUser returns the user's bookings, newest first.
func (s *DefaultBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Get returns a booking by ID.
func (s *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return b, nil
}
