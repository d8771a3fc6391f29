package order

import (
	"fmt"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

const (
	// MinQuantity is the smallest quantity a line item may carry.
	MinQuantity = 1
	// MaxQuantity bounds a single line item's quantity.
	MaxQuantity = 100
	// MaxNoteLength bounds the free-text note on a line item, in runes.
	MaxNoteLength = 500
)

// OrderItem is one line of an order: a catalog entry with its name and unit
// price captured at order time, a quantity, the selected option snapshots,
// and an optional free-text note. Items belong to exactly one Order and
// have no independent lifecycle.
//
// The line total is computed once at creation and stored; it is never
// recomputed on read. The constructor verifies the stored total matches
// (unit price + sum of option adjustments) x quantity.
type OrderItem struct {
	id        kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
	options   []OptionSnapshot
	note      string
	lineTotal kernel.Money
}

// NewOrderItem creates an order line from price-snapshot data.
//
// Validation rules:
//   - id must be a constructed UUID
//   - name must be non-empty
//   - quantity must lie in [MinQuantity, MaxQuantity]
//   - note must not exceed MaxNoteLength runes
//   - lineTotal must equal (unitPrice + sum of adjustments) x quantity,
//     otherwise the price data is corrupt and InvalidPricing is returned
func NewOrderItem(
	id kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantity int,
	options []OptionSnapshot,
	note string,
	lineTotal kernel.Money,
) (OrderItem, error) {
	if err := id.Validate(); err != nil {
		return OrderItem{}, err
	}
	if name == "" {
		return OrderItem{}, errs.NewValueIsRequiredError("itemName")
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return OrderItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}
	if len([]rune(note)) > MaxNoteLength {
		return OrderItem{}, errs.NewValueIsOutOfRangeError("note", len([]rune(note)), 0, MaxNoteLength)
	}

	expected := unitPrice
	for _, opt := range options {
		expected = expected.Add(opt.PriceAdjustment())
	}
	expected = expected.MultiplyQuantity(quantity)
	if !lineTotal.IsEqual(expected) {
		return OrderItem{}, errs.NewInvalidPricingErrorWithCause(
			"lineTotal",
			fmt.Errorf("stored total %s does not match computed total %s", lineTotal, expected),
		)
	}

	item := OrderItem{
		id:        id,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		options:   append([]OptionSnapshot(nil), options...),
		note:      note,
		lineTotal: lineTotal,
	}

	return item, nil
}

// ID returns the item's unique identifier.
func (i OrderItem) ID() kernel.UUID {
	return i.id
}

// Name returns the catalog item name captured at order time.
func (i OrderItem) Name() string {
	return i.name
}

// UnitPrice returns the per-unit price captured at order time.
func (i OrderItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the number of units ordered.
func (i OrderItem) Quantity() int {
	return i.quantity
}

// Options returns a copy of the selected option snapshots.
func (i OrderItem) Options() []OptionSnapshot {
	return append([]OptionSnapshot(nil), i.options...)
}

// Note returns the optional free-text note for this line.
func (i OrderItem) Note() string {
	return i.note
}

// LineTotal returns the stored line total.
func (i OrderItem) LineTotal() kernel.Money {
	return i.lineTotal
}
