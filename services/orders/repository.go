package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the order/waybill store used by the cancellation saga.
type Repository interface {
	// FindOrderByCode returns nil without error when no order has the code.
	FindOrderByCode(ctx context.Context, code string) (*Order, error)

	// FindWaybillByOrderID returns nil without error when the order has no
	// waybill.
	FindWaybillByOrderID(ctx context.Context, orderID string) (*Waybill, error)

	// SaveOrder persists the order status, failing with ErrVersionConflict
	// if the row was modified since it was read.
	SaveOrder(ctx context.Context, tx Tx, order *Order) error

	// SaveWaybill persists the waybill status with the same versioning rule.
	SaveWaybill(ctx context.Context, tx Tx, waybill *Waybill) error

	// AppendWaybillLog inserts a write-once audit record.
	AppendWaybillLog(ctx context.Context, tx Tx, entry *WaybillLog) error

	BeginTx(ctx context.Context) (Tx, error)
}

// Tx is a storage transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// PostgresRepository implements Repository on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository creates a PostgresRepository.
func NewOrderRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{
		db: db,
	}
}

// PostgresTx implements Tx.
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *PostgresTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func pgxTx(tx Tx) (pgx.Tx, error) {
	pgTx, ok := tx.(*PostgresTx)
	if !ok || pgTx.tx == nil {
		return nil, fmt.Errorf("%T: %w", tx, ErrForeignTx)
	}
	return pgTx.tx, nil
}

// BeginTx starts a new transaction.
func (r *PostgresRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresTx{tx: tx}, nil
}

func (r *PostgresRepository) FindOrderByCode(ctx context.Context, code string) (*Order, error) {
	var order Order
	var status int
	err := r.db.QueryRow(ctx, `
		SELECT id, code, status, version, created_at, updated_at
		FROM orders WHERE code = $1
	`, code).Scan(&order.ID, &order.Code, &status, &order.Version, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", code, err)
	}

	order.Status = OrderStatus(status)
	return &order, nil
}

func (r *PostgresRepository) FindWaybillByOrderID(ctx context.Context, orderID string) (*Waybill, error) {
	var waybill Waybill
	var status int
	err := r.db.QueryRow(ctx, `
		SELECT id, code, order_id, status, version, created_at, updated_at
		FROM waybills WHERE order_id = $1
	`, orderID).Scan(&waybill.ID, &waybill.Code, &waybill.OrderID, &status, &waybill.Version, &waybill.CreatedAt, &waybill.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find waybill of order %s: %w", orderID, err)
	}

	waybill.Status = WaybillStatus(status)
	return &waybill, nil
}

func (r *PostgresRepository) SaveOrder(ctx context.Context, tx Tx, order *Order) error {
	pgTx, err := pgxTx(tx)
	if err != nil {
		return err
	}

	tag, err := pgTx.Exec(ctx, `
		UPDATE orders
		SET status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4
	`, int(order.Status), order.UpdatedAt, order.ID, order.Version)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", order.Code, ErrVersionConflict)
	}

	order.Version++
	return nil
}

func (r *PostgresRepository) SaveWaybill(ctx context.Context, tx Tx, waybill *Waybill) error {
	pgTx, err := pgxTx(tx)
	if err != nil {
		return err
	}

	tag, err := pgTx.Exec(ctx, `
		UPDATE waybills
		SET status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4
	`, int(waybill.Status), waybill.UpdatedAt, waybill.ID, waybill.Version)
	if err != nil {
		return fmt.Errorf("failed to save waybill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("waybill %s: %w", waybill.Code, ErrVersionConflict)
	}

	waybill.Version++
	return nil
}

func (r *PostgresRepository) AppendWaybillLog(ctx context.Context, tx Tx, entry *WaybillLog) error {
	pgTx, err := pgxTx(tx)
	if err != nil {
		return err
	}

	_, err = pgTx.Exec(ctx, `
		INSERT INTO waybill_logs (id, waybill_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, entry.ID, entry.WaybillID, entry.Payload, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append waybill log: %w", err)
	}
	return nil
}
