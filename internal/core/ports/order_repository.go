// Package ports defines the interfaces between the application core and
// infrastructure adapters. These contracts enable dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All mutating methods run within the transaction of the unit of work that
// produced the repository; an order and its items are always written and
// removed together.
type OrderRepository interface {
	// Add persists a new order aggregate and all of its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, fully
	// hydrated with its items. Returns *errs.ObjectNotFoundError if the id
	// does not exist in the live store.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order like Get but takes a row-level lock
	// on the order row for the duration of the enclosing transaction,
	// linearizing concurrent status changes on the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists the aggregate's current status in a single
	// atomic update. Items and total are immutable after creation and are
	// never rewritten.
	UpdateStatus(ctx context.Context, aggregate *order.Order) error

	// Archive atomically copies the order and its items into the history
	// tables and deletes them from the live store. Returns the archived
	// aggregate, or *errs.ObjectNotFoundError if the id is absent.
	Archive(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetIDsCreatedBefore returns the ids of all live orders created
	// strictly before the cutoff, oldest first. Used by end-of-day
	// archival housekeeping.
	GetIDsCreatedBefore(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error)
}
