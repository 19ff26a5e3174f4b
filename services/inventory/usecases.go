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

// InventoryUseCase derives stock indices for product variants.
type InventoryUseCase struct {
	repository         LedgerRepository
	tracer             trace.Tracer
	logger             *zap.Logger
	calculationCounter metric.Int64Counter
}

// NewInventoryUseCase creates an InventoryUseCase. The meter is used to
// register the calculation counter.
func NewInventoryUseCase(
	repository LedgerRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *zap.Logger,
) (*InventoryUseCase, error) {
	counter, err := meter.Int64Counter(
		"inventory.index_calculations",
		metric.WithDescription("Inventory index calculations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculation counter: %w", err)
	}

	return &InventoryUseCase{
		repository:         repository,
		tracer:             tracer,
		logger:             logger,
		calculationCounter: counter,
	}, nil
}

// GetIndices loads the ledger of a variant and folds it into indices.
func (uc *InventoryUseCase) GetIndices(ctx context.Context, variantID string) (InventoryIndices, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.get_indices")
	defer span.End()

	span.SetAttributes(attribute.String("variant_id", variantID))

	entries, err := uc.repository.ListLedgerEntries(ctx, variantID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list ledger entries")
		uc.record(ctx, "storage_error")
		uc.logger.Error("failed to list ledger entries", zap.String("variant_id", variantID), zap.Error(err))
		return InventoryIndices{}, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	span.SetAttributes(attribute.Int("ledger.entries", len(entries)))

	indices, err := CalculateIndices(entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ledger invariant violated")

		var exceeds *ExceedsStockError
		var exceedsPending *ExceedsPendingStockError
		switch {
		case errors.As(err, &exceeds):
			uc.record(ctx, "exceeds_stock")
		case errors.As(err, &exceedsPending):
			uc.record(ctx, "exceeds_pending_stock")
		default:
			uc.record(ctx, "invalid_ledger")
		}

		uc.logger.Warn("ledger invariant violated", zap.String("variant_id", variantID), zap.Error(err))
		return InventoryIndices{}, err
	}

	span.SetAttributes(
		attribute.Int("inventory", indices.Inventory),
		attribute.Int("waiting_for_delivery", indices.WaitingForDelivery),
		attribute.Int("can_be_sold", indices.CanBeSold),
		attribute.Int("are_coming", indices.AreComing),
	)
	uc.record(ctx, "ok")

	uc.logger.Debug("inventory indices calculated",
		zap.String("variant_id", variantID),
		zap.Int("entries", len(entries)),
		zap.Int("inventory", indices.Inventory),
		zap.Int("can_be_sold", indices.CanBeSold),
	)

	return indices, nil
}

func (uc *InventoryUseCase) record(ctx context.Context, outcome string) {
	uc.calculationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
