package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OrderCanceller is the use case surface the HTTP layer needs.
type OrderCanceller interface {
	CancelOrder(ctx context.Context, code string) (*CancellationResult, error)
}

// OrderHandler contains the HTTP handlers for orders.
type OrderHandler struct {
	useCase OrderCanceller
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(useCase OrderCanceller) *OrderHandler {
	return &OrderHandler{
		useCase: useCase,
	}
}

type cancelOrderURI struct {
	Code string `uri:"code" binding:"required"`
}

// RegisterRoutes mounts the order endpoints on the router.
func (h *OrderHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.POST("/api/orders/:code/cancel", h.CancelOrder)
}

// CancelOrder runs the cancellation saga for the order in the path.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var uri cancelOrderURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.useCase.CancelOrder(c.Request.Context(), uri.Code)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck reports service liveness.
func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "orders-service",
	})
}

func statusFor(err error) int {
	var (
		notFound     *NotFoundError
		invalidState *InvalidStateError
		carrierErr   *CarrierError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalidState), errors.Is(err, ErrVersionConflict):
		return http.StatusConflict
	case errors.As(err, &carrierErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
