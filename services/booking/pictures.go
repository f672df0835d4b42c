package booking

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"detailing/database"
	bookingRepo "detailing/database/repository/booking"
	"detailing/models"
	"detailing/services/storage"

	"go.uber.org/zap"
)

// ErrPictureNotFound is returned when deleting a picture the booking does not hold.
var ErrPictureNotFound = errors.New("picture not found on booking")

// PictureService attaches before/after pictures to bookings.
type PictureService interface {
	Upload(ctx context.Context, bookingID string, kind models.PictureKind, localFilePath string) (*models.Booking, error)
	Delete(ctx context.Context, bookingID string, kind models.PictureKind, publicID string) (*models.Booking, error)
}

// DefaultPictureService stores files in Storage and references in Repo.
type DefaultPictureService struct {
	Repo    bookingRepo.BookingRepository
	Storage storage.StorageService
	Logger  *zap.Logger
}

func (s *DefaultPictureService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// PictureFolder is the storage folder for a booking's pictures of the given kind.
func PictureFolder(bookingID string, kind models.PictureKind) string {
	return path.Join("bookings", bookingID, string(kind))
}

// Upload stores the file and appends it to the booking. The local file is left in place.
func (s *DefaultPictureService) Upload(ctx context.Context, bookingID string, kind models.PictureKind, localFilePath string) (*models.Booking, error) {
	if _, err := s.Repo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if _, err := os.Stat(localFilePath); err != nil {
		return nil, fmt.Errorf("picture file unavailable: %w", err)
	}

	res, err := s.Storage.UploadFile(ctx, localFilePath, PictureFolder(bookingID, kind))
	if err != nil {
		return nil, err
	}

	b, err := s.Repo.AddPicture(ctx, bookingID, kind, models.Picture{
		PublicID:   res.PublicID,
		URL:        res.URL,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		// Do not leave an orphaned asset behind.
		if delErr := s.Storage.DeleteFile(ctx, res.PublicID); delErr != nil {
			s.logger().Error("pictures: failed to remove orphaned asset", zap.String("publicID", res.PublicID), zap.Error(delErr))
		}
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to attach picture: %w", err)
	}
	s.logger().Info("pictures: uploaded", zap.String("bookingID", bookingID), zap.String("kind", string(kind)), zap.String("publicID", res.PublicID))
	return b, nil
}

// Delete destroys the stored asset, then detaches the picture from the booking.
// If the asset cannot be destroyed the booking keeps its reference so the call can be retried.
func (s *DefaultPictureService) Delete(ctx context.Context, bookingID string, kind models.PictureKind, publicID string) (*models.Booking, error) {
	current, err := s.Repo.GetByID(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if !current.HasPicture(kind, publicID) {
		return nil, fmt.Errorf("%w: %s", ErrPictureNotFound, publicID)
	}

	if err := s.Storage.DeleteFile(ctx, publicID); err != nil {
		return nil, err
	}

	b, err := s.Repo.RemovePicture(ctx, bookingID, kind, publicID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPictureNotFound, publicID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to detach picture: %w", err)
	}
	s.logger().Info("pictures: deleted", zap.String("bookingID", bookingID), zap.String("kind", string(kind)), zap.String("publicID", publicID))
	return b, nil
}
