package main

import (
	"context"
	"database/sql"
	"fmt"
)

// LedgerRepository supplies ledger entries for a product variant.
type LedgerRepository interface {
	// ListLedgerEntries returns every entry of the variant in chronological
	// insertion order.
	ListLedgerEntries(ctx context.Context, variantID string) ([]LedgerEntry, error)
}

// PostgresLedgerRepository implements LedgerRepository on top of database/sql
// with the lib/pq driver.
type PostgresLedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a PostgresLedgerRepository.
func NewLedgerRepository(db *sql.DB) LedgerRepository {
	return &PostgresLedgerRepository{
		db: db,
	}
}

// ListLedgerEntries joins docket lines with their docket header. The ordering
// by (created_at, id) is the business chronology the calculator depends on.
func (r *PostgresLedgerRepository) ListLedgerEntries(ctx context.Context, variantID string) ([]LedgerEntry, error) {
	query := `
		SELECT l.id, l.variant_id, d.id, d.type, d.status, l.quantity, l.created_at
		FROM docket_lines l
		JOIN dockets d ON d.id = l.docket_id
		WHERE l.variant_id = $1
		ORDER BY l.created_at, l.id
	`

	rows, err := r.db.QueryContext(ctx, query, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]LedgerEntry, 0)
	for rows.Next() {
		var entry LedgerEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.VariantID,
			&entry.DocketID,
			&entry.DocketType,
			&entry.DocketStatus,
			&entry.Quantity,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}
