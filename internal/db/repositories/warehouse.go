package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"aerometrics/fleetdw/internal/services"
)

// Warehouse owns the warehouse connection and hands out one transaction
// per load. All dimension and fact writes for a load go through that
// transaction, so the whole batch commits or rolls back as a unit.
type Warehouse struct {
	db *sqlx.DB
}

var _ services.Warehouse = (*Warehouse)(nil)

func NewWarehouse(db *sqlx.DB) *Warehouse {
	return &Warehouse{db: db}
}

// warehouseTx bundles the transaction-scoped repositories behind the
// orchestrator's contract
type warehouseTx struct {
	*DimensionRepository
	*FactRepository
}

// RunInTransaction runs fn inside a single warehouse transaction,
// committing on success and rolling back on any error or panic
func (w *Warehouse) RunInTransaction(ctx context.Context, fn func(tx services.WarehouseTx) error) error {
	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	err = fn(&warehouseTx{
		DimensionRepository: NewDimensionRepository(tx),
		FactRepository:      NewFactRepository(tx),
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}
	committed = true
	return nil
}

// Ping verifies the warehouse connection is alive
func (w *Warehouse) Ping() error {
	return w.db.Ping()
}
