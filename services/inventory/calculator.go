package main

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeQuantity  = errors.New("ledger entry has negative quantity")
	ErrUnknownDocketType = errors.New("ledger entry has unknown docket type")
)

// ExceedsStockError is returned when a completed export takes more than the
// running inventory holds at that point of the ledger.
type ExceedsStockError struct {
	Requested int
	Available int
}

func (e *ExceedsStockError) Error() string {
	return fmt.Sprintf("export of %d exceeds stock on hand (%d)", e.Requested, e.Available)
}

// ExceedsPendingStockError is returned when pending exports add up to more
// than the running inventory. Requested is the quantity of the pending entry
// that tipped it over, or the whole pending total when a completed export
// shrank the inventory below it.
type ExceedsPendingStockError struct {
	Requested int
	Available int
}

func (e *ExceedsPendingStockError) Error() string {
	return fmt.Sprintf("pending export of %d exceeds stock on hand (%d)", e.Requested, e.Available)
}

// CalculateIndices folds the ledger into stock indices. Entries must be in
// chronological insertion order: the stock checks are evaluated against the
// running totals, not the final ones.
func CalculateIndices(entries []LedgerEntry) (InventoryIndices, error) {
	var (
		inventory          int
		waitingForDelivery int
		areComing          int
	)

	for _, entry := range entries {
		if entry.Quantity < 0 {
			return InventoryIndices{}, fmt.Errorf("entry %s: %w", entry.ID, ErrNegativeQuantity)
		}

		switch entry.DocketType {
		case DocketTypeImport:
			if entry.DocketStatus.IsCompleted() {
				inventory += entry.Quantity
			} else {
				areComing += entry.Quantity
			}

		case DocketTypeExport:
			if entry.DocketStatus.IsCompleted() {
				if entry.Quantity > inventory {
					return InventoryIndices{}, &ExceedsStockError{Requested: entry.Quantity, Available: inventory}
				}
				inventory -= entry.Quantity
				if waitingForDelivery > inventory {
					return InventoryIndices{}, &ExceedsPendingStockError{Requested: waitingForDelivery, Available: inventory}
				}
			} else {
				waitingForDelivery += entry.Quantity
				if waitingForDelivery > inventory {
					return InventoryIndices{}, &ExceedsPendingStockError{Requested: entry.Quantity, Available: inventory}
				}
			}

		default:
			return InventoryIndices{}, fmt.Errorf("entry %s (%s): %w", entry.ID, entry.DocketType, ErrUnknownDocketType)
		}
	}

	return InventoryIndices{
		Inventory:          inventory,
		WaitingForDelivery: waitingForDelivery,
		CanBeSold:          inventory - waitingForDelivery,
		AreComing:          areComing,
	}, nil
}
