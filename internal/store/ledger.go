package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dani2c/integracion-plataformas/internal/domain"
	"go.uber.org/zap"
)

// WarehouseName is the display name used for main warehouse events.
const WarehouseName = "Casa Matriz"

// querier is satisfied by both *sql.DB and *sql.Tx so the debit logic can run
// standalone or inside a settlement transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DebitResult carries the remaining stock after a successful reserve.
type DebitResult struct {
	Remaining    int
	LocationName string
}

// InventoryLedger holds per-location stock quantities and exposes the atomic
// check-and-decrement. The check and the decrement are a single conditional
// UPDATE, so concurrent debits against one location can never overdraw it.
type InventoryLedger struct {
	db  *DB
	log *zap.Logger
}

// NewInventoryLedger creates a new inventory ledger
func NewInventoryLedger(database *DB, logger *zap.Logger) *InventoryLedger {
	return &InventoryLedger{db: database, log: logger}
}

// Reserve atomically debits quantity from the referenced location. Returns
// domain.ErrLocationNotFound for an unknown branch, or an
// *domain.InsufficientStockError when the location cannot cover the quantity.
func (l *InventoryLedger) Reserve(ctx context.Context, ref domain.LocationRef, quantity int) (*DebitResult, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("invalid quantity %d", quantity)
	}

	res, err := reserve(ctx, l.db.db, ref, quantity)
	if err != nil {
		return nil, err
	}

	l.log.Info("Stock debited",
		zap.String("location", ref.Key()),
		zap.Int("quantity", quantity),
		zap.Int("remaining", res.Remaining),
	)
	return res, nil
}

// reserve runs the conditional decrement against q. The WHERE quantity >= ?
// guard plus the RowsAffected check is what makes the debit atomic.
func reserve(ctx context.Context, q querier, ref domain.LocationRef, quantity int) (*DebitResult, error) {
	var (
		result sql.Result
		err    error
	)
	if ref.Warehouse {
		result, err = q.ExecContext(ctx,
			`UPDATE main_warehouse SET quantity = quantity - ? WHERE id = 1 AND quantity >= ?`,
			quantity, quantity)
	} else {
		result, err = q.ExecContext(ctx,
			`UPDATE branches SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`,
			quantity, ref.BranchID, quantity)
	}
	if err != nil {
		return nil, fmt.Errorf("debit %s: %w", ref.Key(), err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Either the location does not exist or it cannot cover the
		// quantity; re-read to tell the two apart.
		available, _, err := lookupStock(ctx, q, ref)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InsufficientStockError{
			Location:  ref,
			Available: available,
			Requested: quantity,
		}
	}

	remaining, name, err := lookupStock(ctx, q, ref)
	if err != nil {
		return nil, err
	}
	return &DebitResult{Remaining: remaining, LocationName: name}, nil
}

func lookupStock(ctx context.Context, q querier, ref domain.LocationRef) (quantity int, name string, err error) {
	if ref.Warehouse {
		err = q.QueryRowContext(ctx, `SELECT quantity FROM main_warehouse WHERE id = 1`).Scan(&quantity)
		name = WarehouseName
	} else {
		err = q.QueryRowContext(ctx, `SELECT quantity, name FROM branches WHERE id = ?`, ref.BranchID).Scan(&quantity, &name)
	}
	if err == sql.ErrNoRows {
		return 0, "", domain.ErrLocationNotFound
	}
	if err != nil {
		return 0, "", fmt.Errorf("lookup %s: %w", ref.Key(), err)
	}
	return quantity, name, nil
}

// Snapshot returns all locations with their current stock and price.
func (l *InventoryLedger) Snapshot(ctx context.Context) (*domain.InventorySnapshot, error) {
	rows, err := l.db.db.QueryContext(ctx, `SELECT id, name, quantity, price FROM branches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	snapshot := &domain.InventorySnapshot{Branches: make([]domain.BranchStock, 0)}
	for rows.Next() {
		var b domain.BranchStock
		if err := rows.Scan(&b.ID, &b.Name, &b.Quantity, &b.Price); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		snapshot.Branches = append(snapshot.Branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = l.db.db.QueryRowContext(ctx, `SELECT quantity, price FROM main_warehouse WHERE id = 1`).
		Scan(&snapshot.MainWarehouse.Quantity, &snapshot.MainWarehouse.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to read warehouse: %w", err)
	}

	return snapshot, nil
}

// AddBranch registers a new branch and returns its id.
func (l *InventoryLedger) AddBranch(ctx context.Context, name string, quantity, price int) (int64, error) {
	if quantity < 0 {
		return 0, fmt.Errorf("invalid initial quantity %d", quantity)
	}
	result, err := l.db.db.ExecContext(ctx,
		`INSERT INTO branches (name, quantity, price) VALUES (?, ?, ?)`,
		name, quantity, price)
	if err != nil {
		return 0, fmt.Errorf("failed to add branch: %w", err)
	}
	return result.LastInsertId()
}

// Restock resets every branch and the warehouse to the given quantities, the
// periodic replenishment the operations script performs.
func (l *InventoryLedger) Restock(ctx context.Context, branchQuantity, warehouseQuantity int) error {
	if branchQuantity < 0 || warehouseQuantity < 0 {
		return fmt.Errorf("invalid restock quantities")
	}

	if _, err := l.db.db.ExecContext(ctx, `UPDATE branches SET quantity = ?`, branchQuantity); err != nil {
		return fmt.Errorf("failed to restock branches: %w", err)
	}
	if _, err := l.db.db.ExecContext(ctx, `UPDATE main_warehouse SET quantity = ? WHERE id = 1`, warehouseQuantity); err != nil {
		return fmt.Errorf("failed to restock warehouse: %w", err)
	}

	l.log.Info("Stock replenished",
		zap.Int("branch_quantity", branchQuantity),
		zap.Int("warehouse_quantity", warehouseQuantity),
	)
	return nil
}
