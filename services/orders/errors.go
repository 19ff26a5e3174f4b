package main

import (
	"errors"
	"fmt"
)

// ErrVersionConflict is returned by the store when a row changed between read
// and write.
var ErrVersionConflict = errors.New("version conflict")

// ErrForeignTx is returned when a repository method gets a Tx it did not
// create with BeginTx.
var ErrForeignTx = errors.New("transaction was not started by this repository")

// NotFoundError is returned when no order has the requested code.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.Code)
}

// InvalidStateError is returned when the order status does not allow the
// requested transition.
type InvalidStateError struct {
	Code   string
	Status OrderStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("order %s cannot be cancelled in status %s", e.Code, e.Status)
}

// CarrierError wraps any failure of the carrier cancel call: transport errors,
// non-2xx responses and responses without a record for the order.
type CarrierError struct {
	OrderCode   string
	WaybillCode string
	StatusCode  int
	Message     string
	Err         error
}

func (e *CarrierError) Error() string {
	msg := fmt.Sprintf("carrier cancel failed for order %s (waybill %s)", e.OrderCode, e.WaybillCode)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CarrierError) Unwrap() error {
	return e.Err
}
