package handlers

import (
	"net/http"

	"detailing/models"
	"detailing/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServicesHandler serves the catalog at /api/services.
type ServicesHandler struct {
	CatalogSvc catalog.CatalogService
}

// NewServicesHandler creates a new ServicesHandler.
func NewServicesHandler(svc catalog.CatalogService) *ServicesHandler {
	return &ServicesHandler{CatalogSvc: svc}
}

// GetServices handles GET /api/services.
func (h *ServicesHandler) GetServices(c *gin.Context) {
	services, err := h.CatalogSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, "GetServices: failed to fetch services", "failed to fetch services", err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// CreateService handles POST /api/services.
func (h *ServicesHandler) CreateService(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	svc, err := h.CatalogSvc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, "CreateService: failed to create service", "failed to create service", err)
		return
	}
	getLogger(c).Info("CreateService: service created", zap.String("serviceID", svc.ID), zap.String("name", svc.Name))
	c.JSON(http.StatusCreated, svc)
}

// DeleteService handles DELETE /api/services/:id.
func (h *ServicesHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")
	if err := h.CatalogSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteService: failed to delete service", "failed to delete service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted", "_id": id})
}
