package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus int

const (
	OrderStatusProcessing OrderStatus = 1
	OrderStatusConfirmed  OrderStatus = 2
	OrderStatusInDelivery OrderStatus = 3
	OrderStatusDelivered  OrderStatus = 4
	OrderStatusCancelled  OrderStatus = 5
)

// OrderStatusCancellationThreshold is the first status from which an order
// can no longer be cancelled. Everything at or above it (in delivery,
// delivered and cancelled itself) rejects cancellation.
const OrderStatusCancellationThreshold = OrderStatusInDelivery

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusProcessing:
		return "processing"
	case OrderStatusConfirmed:
		return "confirmed"
	case OrderStatusInDelivery:
		return "in_delivery"
	case OrderStatusDelivered:
		return "delivered"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("order_status(%d)", int(s))
	}
}

// Cancellable reports whether the order may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s < OrderStatusCancellationThreshold
}

// WaybillStatus is the lifecycle state of a carrier shipment.
type WaybillStatus int

const (
	WaybillStatusPendingPickup WaybillStatus = 1
	WaybillStatusDelivering    WaybillStatus = 2
	WaybillStatusDelivered     WaybillStatus = 3
	WaybillStatusCancelled     WaybillStatus = 4
)

func (s WaybillStatus) String() string {
	switch s {
	case WaybillStatusPendingPickup:
		return "pending_pickup"
	case WaybillStatusDelivering:
		return "delivering"
	case WaybillStatusDelivered:
		return "delivered"
	case WaybillStatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("waybill_status(%d)", int(s))
	}
}

// Order is a customer order identified by its business code.
type Order struct {
	ID        string      `json:"id" db:"id"`
	Code      string      `json:"code" db:"code"`
	Status    OrderStatus `json:"status" db:"status"`
	Version   int         `json:"version" db:"version"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// Cancel moves the order to Cancelled. Calling it on an already cancelled
// order is a no-op, so only the guard in the saga decides legality.
func (o *Order) Cancel() {
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
}

// Waybill is the carrier-side shipment of an order. It refers to the order
// by id only.
type Waybill struct {
	ID        string        `json:"id" db:"id"`
	Code      string        `json:"code" db:"code"`
	OrderID   string        `json:"order_id" db:"order_id"`
	Status    WaybillStatus `json:"status" db:"status"`
	Version   int           `json:"version" db:"version"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// Cancel marks the shipment as cancelled by the carrier.
func (w *Waybill) Cancel() {
	w.Status = WaybillStatusCancelled
	w.UpdatedAt = time.Now()
}

// WaybillLog is an append-only audit record of a carrier response.
type WaybillLog struct {
	ID        string    `json:"id" db:"id"`
	WaybillID string    `json:"waybill_id" db:"waybill_id"`
	Payload   string    `json:"payload" db:"payload"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewWaybillLog creates a log entry holding the raw carrier response.
func NewWaybillLog(waybillID string, payload []byte) *WaybillLog {
	return &WaybillLog{
		ID:        uuid.New().String(),
		WaybillID: waybillID,
		Payload:   string(payload),
		CreatedAt: time.Now(),
	}
}

// CancellationResult describes the local state after a successful
// cancellation.
type CancellationResult struct {
	OrderCode        string         `json:"order_code"`
	OrderStatus      OrderStatus    `json:"order_status"`
	WaybillCode      string         `json:"waybill_code,omitempty"`
	WaybillStatus    *WaybillStatus `json:"waybill_status,omitempty"`
	CarrierCancelled bool           `json:"carrier_cancelled"`
}
