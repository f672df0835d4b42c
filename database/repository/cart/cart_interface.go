package cartRepo

import (
	"context"

	"detailing/models"
)

// CartRepository defines methods for cart data access.
type CartRepository interface {
	// GetByUser retrieves the cart of a user. It returns nil, nil when none is stored.
	GetByUser(ctx context.Context, userID string) (*models.Cart, error)
	// Save upserts the cart keyed by its user ID.
	Save(ctx context.Context, cart *models.Cart) error
}
