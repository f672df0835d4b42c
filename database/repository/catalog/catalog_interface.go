package catalogRepo

import (
	"context"

	"detailing/models"
)

// CatalogRepository defines methods for service catalog data access.
type CatalogRepository interface {
	// GetAll retrieves every service, newest first.
	GetAll(ctx context.Context) ([]models.Service, error)
	// GetByID retrieves a service. It returns database.ErrNotFound when missing.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// GetByNames retrieves the services whose name matches one of names.
	GetByNames(ctx context.Context, names []string) ([]models.Service, error)
	// Create inserts a new service.
	Create(ctx context.Context, service *models.Service) error
	// Delete removes a service. It returns database.ErrNotFound when missing.
	Delete(ctx context.Context, id string) error
}
