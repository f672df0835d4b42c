package cartRepo

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

// MongoCartRepo implements CartRepository using MongoDB.
type MongoCartRepo struct {
	coll *mongo.Collection
}

// NewMongoCartRepo creates a new instance of CartRepository using MongoDB.
func NewMongoCartRepo() CartRepository {
	repo := &MongoCartRepo{coll: database.DB().Collection("carts")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create cart indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes enforces one cart per user.
func (r *MongoCartRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByUser retrieves the cart stored for userID.
func (r *MongoCartRepo) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch cart for user %s: %w", userID, err)
	}
	if cart.Services == nil {
		cart.Services = []models.Service{}
	}
	return &cart, nil
}

// Save upserts the cart document.
func (r *MongoCartRepo) Save(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cart.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"services":           cart.Services,
		"selected_date_time": cart.SelectedDateTime,
		"updated_at":         cart.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": cart.UserID}, update, opts); err != nil {
		return fmt.Errorf("failed to save cart for user %s: %w", cart.UserID, err)
	}
	return nil
}
