package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"detailing/database"
	catalogRepo "detailing/database/repository/catalog"
	"detailing/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrServiceNotFound is returned when a catalog entry does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrInvalidService is returned when a new catalog entry fails validation.
	ErrInvalidService = errors.New("invalid service")
)

// CatalogService defines business logic for the services catalog.
type CatalogService interface {
	List(ctx context.Context) ([]models.Service, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	ByNames(ctx context.Context, names []string) ([]models.Service, error)
	Create(ctx context.Context, input models.ServiceInput) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}

// DefaultCatalogService reads through Cache and falls back to Repo on cache errors.
type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Cache  Cache
	Logger *zap.Logger
}

func (s *DefaultCatalogService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// List returns the whole catalog, from cache when possible.
func (s *DefaultCatalogService) List(ctx context.Context) ([]models.Service, error) {
	if s.Cache != nil {
		services, ok, err := s.Cache.Get(ctx)
		if err != nil {
			s.logger().Warn("catalog: cache read failed", zap.Error(err))
		} else if ok {
			return services, nil
		}
	}

	services, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, services); err != nil {
			s.logger().Warn("catalog: cache write failed", zap.Error(err))
		}
	}
	return services, nil
}

// Get returns a single catalog entry.
func (s *DefaultCatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return svc, nil
}

// ByNames returns the catalog entries with the given names; unknown names are skipped.
func (s *DefaultCatalogService) ByNames(ctx context.Context, names []string) ([]models.Service, error) {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	services, err := s.Repo.GetByNames(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services by name: %w", err)
	}
	return services, nil
}

// Create adds a catalog entry and drops the cached listing.
func (s *DefaultCatalogService) Create(ctx context.Context, input models.ServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidService)
	}
	if input.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidService)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidService)
	}

	svc := &models.Service{
		ID:          uuid.New().String(),
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		ImageURL:    input.ImageURL,
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	s.invalidate(ctx)
	return svc, nil
}

// Delete removes a catalog entry and drops the cached listing.
func (s *DefaultCatalogService) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrServiceNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultCatalogService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.logger().Warn("catalog: cache invalidation failed", zap.Error(err))
	}
}
