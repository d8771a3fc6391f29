package services

import (
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// PricingEngine is a pure domain service that computes line and order
// totals. All arithmetic happens on kernel.Money, i.e. in integer minor
// currency units, so results are exact to the satang and independent of
// option evaluation order.
//
// The engine has no state and performs no I/O.
//
// Business rules:
//   - Quantity must lie within the order line bounds
//   - Option price adjustments may be zero or positive; negative
//     adjustments are treated as data corruption (kernel.Money cannot hold
//     them, so a corrupt catalog row fails before reaching the engine)
//   - lineTotal = (unitPrice + sum of adjustments) x quantity
//   - orderTotal = sum of line totals
type PricingEngine struct{}

// NewPricingEngine creates a PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// PriceLine computes the total for one order line from the price snapshot
// captured at order time.
//
// Returns:
//   - the exact line total in minor units
//   - *errs.ValueIsOutOfRangeError when quantity is outside the line bounds
func (PricingEngine) PriceLine(
	unitPrice kernel.Money,
	quantity int,
	selectedOptions []order.OptionSnapshot,
) (kernel.Money, error) {
	if quantity < order.MinQuantity || quantity > order.MaxQuantity {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError(
			"quantity", quantity, order.MinQuantity, order.MaxQuantity,
		)
	}

	perUnit := unitPrice
	for _, opt := range selectedOptions {
		perUnit = perUnit.Add(opt.PriceAdjustment())
	}

	return perUnit.MultiplyQuantity(quantity), nil
}

// PriceOrder computes the order total as the sum of the given line totals.
func (PricingEngine) PriceOrder(lineTotals []kernel.Money) kernel.Money {
	total := kernel.Money{}
	for _, line := range lineTotals {
		total = total.Add(line)
	}
	return total
}
