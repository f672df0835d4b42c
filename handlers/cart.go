package handlers

import (
	"net/http"

	"detailing/middleware"
	"detailing/models"
	"detailing/services/cart"

	"github.com/gin-gonic/gin"
)

// CartHandler serves /api/cart.
type CartHandler struct {
	CartSvc cart.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc cart.CartService) *CartHandler {
	return &CartHandler{CartSvc: svc}
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	result, err := h.CartSvc.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "GetCart: failed to load cart", "failed to load cart", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddToCart handles POST /api/cart.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	userID := c.GetString(middleware.ContextUserID)
	result, err := h.CartSvc.Add(c.Request.Context(), userID, req.Service.ID)
	if err != nil {
		respondError(c, "AddToCart: failed to add service", "failed to add item to cart", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RemoveFromCart handles DELETE /api/cart with {_id} in the body.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	var req models.RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	userID := c.GetString(middleware.ContextUserID)
	result, err := h.CartSvc.Remove(c.Request.Context(), userID, req.ID)
	if err != nil {
		respondError(c, "RemoveFromCart: failed to remove service", "failed to remove item from cart", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClearCart handles DELETE /api/cart/clear.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	result, err := h.CartSvc.Clear(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "ClearCart: failed to clear cart", "failed to clear cart", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SelectDateTime handles PUT /api/cart/datetime.
func (h *CartHandler) SelectDateTime(c *gin.Context) {
	var req models.SelectDateTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	userID := c.GetString(middleware.ContextUserID)
	result, err := h.CartSvc.SelectDateTime(c.Request.Context(), userID, req.SelectedDateTime)
	if err != nil {
		respondError(c, "SelectDateTime: failed to update cart", "failed to select date/time", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
