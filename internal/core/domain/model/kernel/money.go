package kernel

import (
	"fmt"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// satangPerBaht is the number of minor currency units in one baht.
const satangPerBaht = 100

// Money is a value object holding a non-negative currency amount in integer
// minor units (satang). All pricing arithmetic happens on Money so that
// totals are exact to the satang; conversion to a decimal display value
// happens only at the boundary via Baht or String.
//
// The zero value represents zero satang and is valid. Money is immutable
// and safe for concurrent use.
type Money struct {
	satang int64
}

// NewMoneyFromSatang creates a Money amount from integer minor units.
// Negative amounts are rejected: prices and adjustments are non-negative
// throughout the catalog and a negative value means corrupt data.
func NewMoneyFromSatang(satang int64) (Money, error) {
	if satang < 0 {
		return Money{}, errs.NewInvalidPricingErrorWithCause(
			"amount",
			fmt.Errorf("%d satang is negative", satang),
		)
	}
	return Money{satang: satang}, nil
}

// MoneyFromBaht converts a decimal baht amount to Money, rounding to the
// nearest satang. Used only at boundaries that receive decimal input, such
// as catalog rows.
func MoneyFromBaht(baht float64) (Money, error) {
	satang := int64(baht*satangPerBaht + 0.5)
	if baht < 0 {
		satang = int64(baht*satangPerBaht - 0.5)
	}
	return NewMoneyFromSatang(satang)
}

// Satang returns the amount in integer minor units.
func (m Money) Satang() int64 {
	return m.satang
}

// Baht returns the decimal display value. Boundary use only; internal
// arithmetic stays on satang.
func (m Money) Baht() float64 {
	return float64(m.satang) / satangPerBaht
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{satang: m.satang + other.satang}
}

// MultiplyQuantity returns the amount scaled by a line quantity.
func (m Money) MultiplyQuantity(quantity int) Money {
	return Money{satang: m.satang * int64(quantity)}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.satang == other.satang
}

// IsZero reports whether the amount is zero satang.
func (m Money) IsZero() bool {
	return m.satang == 0
}

// String formats the amount as a decimal baht string, e.g. "65.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.satang/satangPerBaht, m.satang%satangPerBaht)
}
