package order

import (
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// OptionSnapshot is a copy of a selected menu option captured at order
// time. It carries the option's type (for example "sweetness" or
// "temperature"), its name, and its price adjustment, frozen so that later
// catalog edits never retroactively alter a placed order's price.
//
// OptionSnapshot is an immutable value object.
type OptionSnapshot struct {
	optionType      string
	name            string
	priceAdjustment kernel.Money
}

// NewOptionSnapshot creates a snapshot of a selected menu option.
// The option type and name must be non-empty. The price adjustment is a
// Money value and therefore already guaranteed non-negative.
func NewOptionSnapshot(optionType, name string, priceAdjustment kernel.Money) (OptionSnapshot, error) {
	if optionType == "" {
		return OptionSnapshot{}, errs.NewValueIsRequiredError("optionType")
	}
	if name == "" {
		return OptionSnapshot{}, errs.NewValueIsRequiredError("optionName")
	}

	return OptionSnapshot{
		optionType:      optionType,
		name:            name,
		priceAdjustment: priceAdjustment,
	}, nil
}

// OptionType returns the option category label, such as "temperature".
func (o OptionSnapshot) OptionType() string {
	return o.optionType
}

// Name returns the chosen option's name, such as "Iced".
func (o OptionSnapshot) Name() string {
	return o.name
}

// PriceAdjustment returns the per-unit price adjustment captured at order time.
func (o OptionSnapshot) PriceAdjustment() kernel.Money {
	return o.priceAdjustment
}
