package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"detailing/database"
	"detailing/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for the busy-time window scan and per-user listing.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func pictureField(kind models.PictureKind) (string, error) {
	switch kind {
	case models.PictureBefore:
		return "before_pictures", nil
	case models.PictureAfter:
		return "after_pictures", nil
	default:
		return "", fmt.Errorf("unknown picture kind %q", kind)
	}
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetByUser retrieves a user's bookings.
func (r *MongoBookingRepo) GetByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

// GetActiveBetween retrieves confirmed bookings overlapping the window.
func (r *MongoBookingRepo) GetActiveBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status": models.BookingStatusConfirmed,
		"start":  bson.M{"$lt": to},
		"end":    bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *MongoBookingRepo) updatePictures(ctx context.Context, filter, update bson.M) (*models.Booking, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking pictures: %w", err)
	}
	return &b, nil
}

// AddPicture appends a picture to the booking.
func (r *MongoBookingRepo) AddPicture(ctx context.Context, bookingID string, kind models.PictureKind, picture models.Picture) (*models.Booking, error) {
	field, err := pictureField(kind)
	if err != nil {
		return nil, err
	}
	return r.updatePictures(ctx, bson.M{"_id": bookingID}, bson.M{"$push": bson.M{field: picture}})
}

// RemovePicture pulls a picture from the booking. The filter only matches when the
// picture is present, so a missing picture surfaces as database.ErrNotFound.
func (r *MongoBookingRepo) RemovePicture(ctx context.Context, bookingID string, kind models.PictureKind, publicID string) (*models.Booking, error) {
	field, err := pictureField(kind)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"_id": bookingID, field + ".public_id": publicID}
	update := bson.M{"$pull": bson.M{field: bson.M{"public_id": publicID}}}
	return r.updatePictures(ctx, filter, update)
}

// CompleteEndedBefore flips finished confirmed bookings to completed.
func (r *MongoBookingRepo) CompleteEndedBefore(ctx context.Context, t time.Time) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"status": models.BookingStatusConfirmed, "end": bson.M{"$lt": t}}
	update := bson.M{"$set": bson.M{"status": models.BookingStatusCompleted}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete bookings: %w", err)
	}
	return res.ModifiedCount, nil
}
