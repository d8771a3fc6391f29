package ports

import (
	"context"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/menu"
)

// MenuRepository is the read-only catalog lookup consumed during order
// creation. Catalog management is owned by an external collaborator; the
// core only resolves items and snapshots their prices.
type MenuRepository interface {
	// GetItem retrieves a catalog entry by id.
	// Returns *errs.ObjectNotFoundError for unknown ids.
	GetItem(ctx context.Context, id kernel.UUID) (menu.Item, error)

	// GetOptions retrieves all selectable options of a catalog item,
	// including currently unavailable ones so stale selections can be
	// rejected with a precise error.
	GetOptions(ctx context.Context, itemID kernel.UUID) ([]menu.Option, error)
}
