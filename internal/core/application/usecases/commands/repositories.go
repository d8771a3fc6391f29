// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, and post-commit event publication.
package commands

import (
	"context"
	"errors"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/ports"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// StoreTimeout bounds every transactional store interaction so a stalled
// storage layer cannot hang a request indefinitely. On expiry the
// operation fails as StoreUnavailable and the caller may retry.
const StoreTimeout = 5 * time.Second

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// MenuRepoFactory provides access to the catalog lookup within a
	// transaction.
	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	// OrderUoW manages transactions for order-only operations: status
	// transitions and archival.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that touch both the order store and the
	// catalog lookup. Order creation resolves and snapshots catalog rows
	// in the same transaction that inserts the order.
	UoW interface {
		TxManager
		OrderRepoFactory
		MenuRepoFactory
	}

	// UoWFactory creates new unit of work instances for order creation.
	UoWFactory interface {
		Create() UoW
	}
)

// classifyStoreError maps a timed out store interaction to
// StoreUnavailable so callers can retry with backoff. Transactions
// guarantee no partial state was left visible. Other errors pass through
// untouched.
func classifyStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewStoreUnavailableError(op, err)
	}
	return err
}
