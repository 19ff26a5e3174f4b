package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(docketType DocketType, status DocketStatus, qty int) LedgerEntry {
	return LedgerEntry{
		ID:           "line",
		VariantID:    "variant-1",
		DocketType:   docketType,
		DocketStatus: status,
		Quantity:     qty,
	}
}

func TestCalculateIndices(t *testing.T) {
	tests := []struct {
		name    string
		entries []LedgerEntry
		want    InventoryIndices
	}{
		{
			name:    "empty ledger",
			entries: nil,
			want:    InventoryIndices{},
		},
		{
			name: "completed import",
			entries: []LedgerEntry{
				entry(DocketTypeImport, DocketStatusCompleted, 10),
			},
			want: InventoryIndices{Inventory: 10, CanBeSold: 10},
		},
		{
			name: "completed import then completed export",
			entries: []LedgerEntry{
				entry(DocketTypeImport, DocketStatusCompleted, 20),
				entry(DocketTypeExport, DocketStatusCompleted, 5),
			},
			want: InventoryIndices{Inventory: 15, CanBeSold: 15},
		},
		{
			name: "completed import then pending export",
			entries: []LedgerEntry{
				entry(DocketTypeImport, DocketStatusCompleted, 20),
				entry(DocketTypeExport, DocketStatusProcessing, 8),
			},
			want: InventoryIndices{Inventory: 20, WaitingForDelivery: 8, CanBeSold: 12},
		},
		{
			name: "pending import only",
			entries: []LedgerEntry{
				entry(DocketTypeImport, DocketStatusNew, 15),
			},
			want: InventoryIndices{AreComing: 15},
		},
		{
			name: "mixed ledger",
			entries: []LedgerEntry{
				entry(DocketTypeImport, DocketStatusCompleted, 20),
				entry(DocketTypeExport, DocketStatusCompleted, 5),
				entry(DocketTypeExport, DocketStatusNew, 8),
				entry(DocketTypeImport, DocketStatusProcessing, 10),
			},
			want: InventoryIndices{Inventory: 15, WaitingForDelivery: 8, CanBeSold: 7, AreComing: 10},
		},
		{
			name: "export of exactly the stock on hand",
			entries: []LedgerEntry{
				entry(DocketTypeImport, DocketStatusCompleted, 7),
				entry(DocketTypeExport, DocketStatusCompleted, 7),
			},
			want: InventoryIndices{},
		},
		{
			name: "pending exports up to the stock on hand",
			entries: []LedgerEntry{
				entry(DocketTypeImport, DocketStatusCompleted, 10),
				entry(DocketTypeExport, DocketStatusNew, 4),
				entry(DocketTypeExport, DocketStatusProcessing, 6),
			},
			want: InventoryIndices{Inventory: 10, WaitingForDelivery: 10},
		},
		{
			name: "unknown status counts as pending",
			entries: []LedgerEntry{
				entry(DocketTypeImport, DocketStatus(9), 3),
			},
			want: InventoryIndices{AreComing: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateIndices(tt.entries)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Inventory-got.WaitingForDelivery, got.CanBeSold)
		})
	}
}

func TestCalculateIndices_ExceedsStockReportsRunningInventory(t *testing.T) {
	entries := []LedgerEntry{
		entry(DocketTypeImport, DocketStatusCompleted, 10),
		entry(DocketTypeExport, DocketStatusCompleted, 15),
		// a later import would make the final total large enough
		entry(DocketTypeImport, DocketStatusCompleted, 100),
	}

	_, err := CalculateIndices(entries)

	var exceeds *ExceedsStockError
	require.True(t, errors.As(err, &exceeds))
	assert.Equal(t, 15, exceeds.Requested)
	assert.Equal(t, 10, exceeds.Available)
}

func TestCalculateIndices_ExportBeforeImportFails(t *testing.T) {
	entries := []LedgerEntry{
		entry(DocketTypeExport, DocketStatusCompleted, 5),
		entry(DocketTypeImport, DocketStatusCompleted, 20),
	}

	_, err := CalculateIndices(entries)

	var exceeds *ExceedsStockError
	require.True(t, errors.As(err, &exceeds))
	assert.Equal(t, 5, exceeds.Requested)
	assert.Equal(t, 0, exceeds.Available)
}

func TestCalculateIndices_ExceedsPendingStock(t *testing.T) {
	entries := []LedgerEntry{
		entry(DocketTypeImport, DocketStatusCompleted, 10),
		entry(DocketTypeExport, DocketStatusNew, 6),
		entry(DocketTypeExport, DocketStatusNew, 5),
	}

	_, err := CalculateIndices(entries)

	var exceeds *ExceedsPendingStockError
	require.True(t, errors.As(err, &exceeds))
	assert.Equal(t, 5, exceeds.Requested)
	assert.Equal(t, 10, exceeds.Available)
	assert.EqualError(t, err, "pending export of 5 exceeds stock on hand (10)")
}

func TestCalculateIndices_CompletedExportCannotUncoverPendingExports(t *testing.T) {
	entries := []LedgerEntry{
		entry(DocketTypeImport, DocketStatusCompleted, 20),
		entry(DocketTypeExport, DocketStatusNew, 15),
		entry(DocketTypeExport, DocketStatusCompleted, 10),
	}

	got, err := CalculateIndices(entries)

	assert.Equal(t, InventoryIndices{}, got)
	var exceeds *ExceedsPendingStockError
	require.True(t, errors.As(err, &exceeds))
	assert.Equal(t, 15, exceeds.Requested)
	assert.Equal(t, 10, exceeds.Available)
}

func TestCalculateIndices_CompletedExportDownToPendingTotal(t *testing.T) {
	entries := []LedgerEntry{
		entry(DocketTypeImport, DocketStatusCompleted, 20),
		entry(DocketTypeExport, DocketStatusNew, 10),
		entry(DocketTypeExport, DocketStatusCompleted, 10),
	}

	got, err := CalculateIndices(entries)

	require.NoError(t, err)
	assert.Equal(t, InventoryIndices{Inventory: 10, WaitingForDelivery: 10}, got)
}

func TestCalculateIndices_PendingExportLegalOnlyAfterImport(t *testing.T) {
	pendingFirst := []LedgerEntry{
		entry(DocketTypeExport, DocketStatusNew, 8),
		entry(DocketTypeImport, DocketStatusCompleted, 20),
	}
	importFirst := []LedgerEntry{
		entry(DocketTypeImport, DocketStatusCompleted, 20),
		entry(DocketTypeExport, DocketStatusNew, 8),
	}

	_, err := CalculateIndices(pendingFirst)
	var exceeds *ExceedsPendingStockError
	require.True(t, errors.As(err, &exceeds))
	assert.Equal(t, 0, exceeds.Available)

	got, err := CalculateIndices(importFirst)
	require.NoError(t, err)
	assert.Equal(t, InventoryIndices{Inventory: 20, WaitingForDelivery: 8, CanBeSold: 12}, got)
}

func TestCalculateIndices_AreComingIndependentOfPosition(t *testing.T) {
	base := []LedgerEntry{
		entry(DocketTypeImport, DocketStatusCompleted, 20),
		entry(DocketTypeExport, DocketStatusCompleted, 5),
		entry(DocketTypeExport, DocketStatusNew, 8),
	}
	pending := entry(DocketTypeImport, DocketStatusNew, 12)

	for i := 0; i <= len(base); i++ {
		entries := make([]LedgerEntry, 0, len(base)+1)
		entries = append(entries, base[:i]...)
		entries = append(entries, pending)
		entries = append(entries, base[i:]...)

		got, err := CalculateIndices(entries)
		require.NoError(t, err)
		assert.Equal(t, 12, got.AreComing, "pending import at position %d", i)
		assert.Equal(t, 15, got.Inventory)
	}
}

func TestCalculateIndices_RejectsBadEntries(t *testing.T) {
	_, err := CalculateIndices([]LedgerEntry{entry(DocketTypeImport, DocketStatusCompleted, -1)})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, err = CalculateIndices([]LedgerEntry{entry(DocketType(7), DocketStatusCompleted, 1)})
	assert.ErrorIs(t, err, ErrUnknownDocketType)
}

func TestCalculateIndices_DoesNotMutateInput(t *testing.T) {
	entries := []LedgerEntry{
		entry(DocketTypeImport, DocketStatusCompleted, 20),
		entry(DocketTypeExport, DocketStatusNew, 8),
	}
	snapshot := append([]LedgerEntry(nil), entries...)

	_, err := CalculateIndices(entries)

	require.NoError(t, err)
	assert.Equal(t, snapshot, entries)
}
