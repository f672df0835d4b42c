package cart

import (
	"context"
	"fmt"
	"time"

	cartRepo "detailing/database/repository/cart"
	"detailing/models"
	"detailing/services/catalog"

	"go.uber.org/zap"
)

// CartService defines the server-side cart operations.
type CartService interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Add(ctx context.Context, userID, serviceID string) (*models.Cart, error)
	Remove(ctx context.Context, userID, serviceID string) (*models.Cart, error)
	Clear(ctx context.Context, userID string) (*models.Cart, error)
	SelectDateTime(ctx context.Context, userID string, at time.Time) (*models.Cart, error)
}

// DefaultCartService stores carts in Repo and resolves services through Catalog.
type DefaultCartService struct {
	Repo    cartRepo.CartRepository
	Catalog catalog.CatalogService
	Logger  *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultCartService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCartService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Get returns the user's cart, or an empty one when none is stored.
func (s *DefaultCartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	c, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c == nil {
		return models.NewCart(userID), nil
	}
	if c.Services == nil {
		c.Services = []models.Service{}
	}
	return c, nil
}

// Add puts the catalog's copy of serviceID in the cart.
func (s *DefaultCartService) Add(ctx context.Context, userID, serviceID string) (*models.Cart, error) {
	svc, err := s.Catalog.Get(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.Contains(serviceID) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInCart, serviceID)
	}

	c.Services = append(c.Services, *svc)
	if err := s.Repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.logger().Debug("cart: service added", zap.String("userID", userID), zap.String("serviceID", serviceID))
	return c, nil
}

// Remove drops serviceID from the cart.
func (s *DefaultCartService) Remove(ctx context.Context, userID, serviceID string) (*models.Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !c.Contains(serviceID) {
		return nil, fmt.Errorf("%w: %s", ErrNotInCart, serviceID)
	}

	kept := make([]models.Service, 0, len(c.Services)-1)
	for _, svc := range c.Services {
		if svc.ID != serviceID {
			kept = append(kept, svc)
		}
	}
	c.Services = kept
	if err := s.Repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.logger().Debug("cart: service removed", zap.String("userID", userID), zap.String("serviceID", serviceID))
	return c, nil
}

// Clear empties the cart. Clearing an empty cart succeeds.
func (s *DefaultCartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	c := models.NewCart(userID)
	if err := s.Repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return c, nil
}

// SelectDateTime records the customer's chosen appointment start.
func (s *DefaultCartService) SelectDateTime(ctx context.Context, userID string, at time.Time) (*models.Cart, error) {
	if at.IsZero() || !at.After(s.now()) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDateTime, at.Format(time.RFC3339))
	}
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	at = at.UTC()
	c.SelectedDateTime = &at
	if err := s.Repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}
