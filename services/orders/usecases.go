package main

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// OrderUseCase runs the order cancellation saga.
type OrderUseCase struct {
	repository          Repository
	carrier             CarrierGateway
	tracer              trace.Tracer
	logger              *zap.Logger
	cancellationCounter metric.Int64Counter
}

// NewOrderUseCase creates an OrderUseCase.
func NewOrderUseCase(
	repository Repository,
	carrier CarrierGateway,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *zap.Logger,
) (*OrderUseCase, error) {
	counter, err := meter.Int64Counter(
		"orders.cancellations",
		metric.WithDescription("Order cancellation attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cancellation counter: %w", err)
	}

	return &OrderUseCase{
		repository:          repository,
		carrier:             carrier,
		tracer:              tracer,
		logger:              logger,
		cancellationCounter: counter,
	}, nil
}

// CancelOrder cancels the order with the given code. When the order has a
// waybill, the carrier is asked first and nothing is written locally unless
// the carrier answered with a record for it.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, code string) (*CancellationResult, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.cancel_order")
	defer span.End()

	span.SetAttributes(attribute.String("order_code", code))
	logger := uc.logger.With(zap.String("order_code", code))
	logger.Info("cancelling order")

	result, outcome, err := uc.cancelOrder(ctx, logger, code)
	uc.cancellationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	span.SetAttributes(attribute.String("outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		logger.Warn("order cancellation failed", zap.String("outcome", outcome), zap.Error(err))
		return nil, err
	}

	logger.Info("order cancelled", zap.String("outcome", outcome), zap.Bool("carrier_cancelled", result.CarrierCancelled))
	return result, nil
}

func (uc *OrderUseCase) cancelOrder(ctx context.Context, logger *zap.Logger, code string) (*CancellationResult, string, error) {
	order, err := uc.repository.FindOrderByCode(ctx, code)
	if err != nil {
		return nil, "storage_error", fmt.Errorf("failed to find order: %w", err)
	}
	if order == nil {
		return nil, "not_found", &NotFoundError{Code: code}
	}

	if !order.Status.Cancellable() {
		return nil, "invalid_state", &InvalidStateError{Code: code, Status: order.Status}
	}

	waybill, err := uc.repository.FindWaybillByOrderID(ctx, order.ID)
	if err != nil {
		return nil, "storage_error", fmt.Errorf("failed to find waybill: %w", err)
	}

	if waybill == nil {
		order.Cancel()
		if err := uc.persist(ctx, order, nil, nil); err != nil {
			return nil, storageOutcome(err), err
		}
		return &CancellationResult{
			OrderCode:   order.Code,
			OrderStatus: order.Status,
		}, "cancelled_without_waybill", nil
	}

	logger = logger.With(zap.String("waybill_code", waybill.Code))
	logger.Info("requesting carrier cancellation")

	resp, err := uc.carrier.CancelOrders(ctx, []string{waybill.Code})
	if err != nil {
		carrierErr := &CarrierError{OrderCode: code, WaybillCode: waybill.Code, Err: err}
		var statusErr *CarrierStatusError
		if errors.As(err, &statusErr) {
			carrierErr.StatusCode = statusErr.StatusCode
		}
		return nil, "carrier_error", carrierErr
	}

	verdict, ok := resp.Find(waybill.Code)
	if !ok {
		return nil, "carrier_error", &CarrierError{
			OrderCode:   code,
			WaybillCode: waybill.Code,
			Message:     "no result for waybill in carrier response",
		}
	}

	order.Cancel()

	if !verdict.Result {
		logger.Info("carrier declined waybill cancellation", zap.String("carrier_message", verdict.Message))
		if err := uc.persist(ctx, order, nil, nil); err != nil {
			return nil, storageOutcome(err), err
		}
		status := waybill.Status
		return &CancellationResult{
			OrderCode:     order.Code,
			OrderStatus:   order.Status,
			WaybillCode:   waybill.Code,
			WaybillStatus: &status,
		}, "cancelled_carrier_declined", nil
	}

	waybill.Cancel()
	if err := uc.persist(ctx, order, waybill, NewWaybillLog(waybill.ID, resp.Raw)); err != nil {
		// the carrier side is already cancelled and is not compensated
		logger.Error("carrier cancelled waybill but local state was not saved", zap.Error(err))
		return nil, storageOutcome(err), err
	}

	status := waybill.Status
	return &CancellationResult{
		OrderCode:        order.Code,
		OrderStatus:      order.Status,
		WaybillCode:      waybill.Code,
		WaybillStatus:    &status,
		CarrierCancelled: true,
	}, "cancelled_with_carrier", nil
}

// persist writes the order and, when given, the waybill together with its
// log entry in a single transaction.
func (uc *OrderUseCase) persist(ctx context.Context, order *Order, waybill *Waybill, entry *WaybillLog) error {
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := uc.repository.SaveOrder(ctx, tx, order); err != nil {
		return err
	}

	if waybill != nil {
		if err := uc.repository.SaveWaybill(ctx, tx, waybill); err != nil {
			return err
		}
		if err := uc.repository.AppendWaybillLog(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return nil
}

func storageOutcome(err error) string {
	if errors.Is(err, ErrVersionConflict) {
		return "version_conflict"
	}
	return "storage_error"
}
