package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Cancellable(t *testing.T) {
	assert.True(t, OrderStatusProcessing.Cancellable())
	assert.True(t, OrderStatusConfirmed.Cancellable())
	assert.False(t, OrderStatusInDelivery.Cancellable())
	assert.False(t, OrderStatusDelivered.Cancellable())
	assert.False(t, OrderStatusCancelled.Cancellable())
	assert.Equal(t, OrderStatusInDelivery, OrderStatusCancellationThreshold)
}

func TestOrderStatus_Codes(t *testing.T) {
	// stored as integers, the values must not drift
	assert.Equal(t, 1, int(OrderStatusProcessing))
	assert.Equal(t, 2, int(OrderStatusConfirmed))
	assert.Equal(t, 3, int(OrderStatusInDelivery))
	assert.Equal(t, 5, int(OrderStatusCancelled))
	assert.Equal(t, 1, int(WaybillStatusPendingPickup))
	assert.Equal(t, 4, int(WaybillStatusCancelled))
	assert.Equal(t, "order_status(9)", OrderStatus(9).String())
}

func TestOrder_Cancel(t *testing.T) {
	order := &Order{ID: "order-1", Code: "ORD-001", Status: OrderStatusConfirmed}

	order.Cancel()
	assert.Equal(t, OrderStatusCancelled, order.Status)

	order.Cancel()
	assert.Equal(t, OrderStatusCancelled, order.Status)
}

func TestNewWaybillLog(t *testing.T) {
	payload := []byte(`{"data":[]}`)

	entry := NewWaybillLog("waybill-1", payload)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "waybill-1", entry.WaybillID)
	assert.Equal(t, string(payload), entry.Payload)
	assert.WithinDuration(t, time.Now(), entry.CreatedAt, time.Second)
}
