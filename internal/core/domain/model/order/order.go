package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// MaxCustomerNameLength bounds the customer display name, in runes.
const MaxCustomerNameLength = 100

// Order represents a customer's submitted, priced set of line items with a
// lifecycle status. It is the aggregate root of the ordering domain.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and a non-empty customer name
//   - Owns at least one OrderItem; insertion order equals cart order
//   - Total always equals the sum of the item line totals
//   - Status transitions follow the fixed state machine in Status
//   - Items, total, and creation timestamp are immutable after creation
//
// The struct uses private fields to ensure encapsulation; the only mutation
// after construction is a status transition.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerName is the display name the order was placed under
	customerName string

	// status is the current state in the order lifecycle
	status Status

	// total is the stored order total, derived once at creation
	total kernel.Money

	// items holds the order lines in cart order
	items []OrderItem

	// createdAt is the server-assigned creation timestamp, set once
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with a server-assigned
// creation timestamp. The total is validated against the sum of the item
// line totals; a mismatch means the pricing data is corrupt.
func NewOrder(id kernel.UUID, customerName string, items []OrderItem, total kernel.Money) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.setTotal(total); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without applying
// creation-time defaults. The stored status must be valid and the stored
// total must still match the sum of the item line totals.
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	status Status,
	total kernel.Money,
	items []OrderItem,
	createdAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	o := &Order{
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.setTotal(total); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value or hand-built structs.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the display name the order was placed under.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the stored order total.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Items returns a copy of the order lines in cart order. Mutating the
// returned slice never affects the aggregate.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// CreatedAt returns the server-assigned creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// TransitionTo requests a status change through the state machine.
//
// Returns:
//   - (false, nil) when the order is already in the target status (no-op)
//   - (true, nil) when the transition was applied
//   - (false, error) when the transition is not permitted; the order is unchanged
func (o *Order) TransitionTo(target Status) (bool, error) {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	if newStatus == o.status {
		return false, nil
	}

	o.status = newStatus
	return true, nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerName validates and sets the customer display name.
func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if length := len([]rune(customerName)); length > MaxCustomerNameLength {
		return errs.NewValueIsOutOfRangeError("customerName", length, 1, MaxCustomerNameLength)
	}
	o.customerName = customerName
	return nil
}

// setItems validates and sets the order lines, preserving cart order.
func (o *Order) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = append([]OrderItem(nil), items...)
	return nil
}

// setTotal validates the stored total against the sum of the line totals.
func (o *Order) setTotal(total kernel.Money) error {
	sum := kernel.Money{}
	for _, item := range o.items {
		sum = sum.Add(item.LineTotal())
	}
	if !total.IsEqual(sum) {
		return errs.NewInvalidPricingErrorWithCause(
			"orderTotal",
			fmt.Errorf("stored total %s does not match item sum %s", total, sum),
		)
	}
	o.total = total
	return nil
}
