package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndicesGetter is the use case surface the HTTP layer needs.
type IndicesGetter interface {
	GetIndices(ctx context.Context, variantID string) (InventoryIndices, error)
}

// InventoryHandler contains the HTTP handlers for inventory indices.
type InventoryHandler struct {
	useCase IndicesGetter
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(useCase IndicesGetter) *InventoryHandler {
	return &InventoryHandler{
		useCase: useCase,
	}
}

// RegisterRoutes mounts the inventory endpoints on the router.
func (h *InventoryHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/api/inventory/variants/:variantId/indices", h.GetIndices)
}

// GetIndices returns the stock indices of a variant.
func (h *InventoryHandler) GetIndices(c *gin.Context) {
	variantID := c.Param("variantId")

	indices, err := h.useCase.GetIndices(c.Request.Context(), variantID)
	if err != nil {
		var exceeds *ExceedsStockError
		var exceedsPending *ExceedsPendingStockError
		switch {
		case errors.As(err, &exceeds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":     err.Error(),
				"requested": exceeds.Requested,
				"available": exceeds.Available,
			})
		case errors.As(err, &exceedsPending):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":     err.Error(),
				"requested": exceedsPending.Requested,
				"available": exceedsPending.Available,
			})
		case errors.Is(err, ErrNegativeQuantity), errors.Is(err, ErrUnknownDocketType):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate inventory indices"})
		}
		return
	}

	c.JSON(http.StatusOK, indices)
}

// HealthCheck reports service liveness.
func (h *InventoryHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "inventory-service",
	})
}
