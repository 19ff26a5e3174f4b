package main

import (
	"fmt"
	"time"
)

// DocketType identifies the direction of a warehouse transaction.
type DocketType int

const (
	DocketTypeImport DocketType = 1
	DocketTypeExport DocketType = 2
)

func (t DocketType) String() string {
	switch t {
	case DocketTypeImport:
		return "import"
	case DocketTypeExport:
		return "export"
	default:
		return fmt.Sprintf("docket_type(%d)", int(t))
	}
}

// DocketStatus is the lifecycle state of a warehouse transaction. The
// calculator only distinguishes Completed from everything else.
type DocketStatus int

const (
	DocketStatusNew        DocketStatus = 1
	DocketStatusProcessing DocketStatus = 2
	DocketStatusCompleted  DocketStatus = 3
)

func (s DocketStatus) String() string {
	switch s {
	case DocketStatusNew:
		return "new"
	case DocketStatusProcessing:
		return "processing"
	case DocketStatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("docket_status(%d)", int(s))
	}
}

// IsCompleted reports whether the docket has physically moved stock.
func (s DocketStatus) IsCompleted() bool {
	return s == DocketStatusCompleted
}

// LedgerEntry is one line of a docket for a single product variant.
type LedgerEntry struct {
	ID           string       `json:"id" db:"id"`
	VariantID    string       `json:"variant_id" db:"variant_id"`
	DocketID     string       `json:"docket_id" db:"docket_id"`
	DocketType   DocketType   `json:"docket_type" db:"docket_type"`
	DocketStatus DocketStatus `json:"docket_status" db:"docket_status"`
	Quantity     int          `json:"quantity" db:"quantity"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// InventoryIndices is the point-in-time stock picture of a variant.
// CanBeSold is always Inventory - WaitingForDelivery.
type InventoryIndices struct {
	Inventory          int `json:"inventory"`
	WaitingForDelivery int `json:"waiting_for_delivery"`
	CanBeSold          int `json:"can_be_sold"`
	AreComing          int `json:"are_coming"`
}
