// Package menu holds the read model of the catalog as consumed by order
// creation. Catalog management itself lives outside this core; orders only
// need to resolve an item, check option availability, and snapshot prices.
// The types here are plain read-only views, not aggregates.
package menu

import (
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
)

// Item is a catalog entry as seen at order time.
type Item struct {
	ID        kernel.UUID
	Name      string
	BasePrice kernel.Money
	Category  string
}

// Option is a selectable option of a catalog item, such as
// {temperature, Iced, +5.00}. Unavailable options are listed so that a
// stale client selection can be rejected explicitly.
type Option struct {
	OptionType      string
	Name            string
	PriceAdjustment kernel.Money
	Available       bool
}
