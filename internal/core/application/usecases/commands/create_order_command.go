package commands

import (
	"errors"
	"sort"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLineIsNotConstructed = errors.New(
		"OrderLine must be created via NewOrderLine constructor",
	)
)

// OrderLine is one raw cart line of a create-order request: a catalog item
// reference, a quantity, the chosen option per option type, and an optional
// note. Prices are intentionally absent; the handler snapshots them from
// the catalog.
type OrderLine struct { //nolint:recvcheck //using for validation
	menuItemID      kernel.UUID
	quantity        int
	selectedOptions map[string]string
	note            string

	guard guard.ConstructorGuard
}

// NewOrderLine creates a cart line. The item reference must be valid, the
// quantity within line bounds, and the note within its length bound.
// selectedOptions maps an option type label to the chosen option name,
// e.g. {"temperature": "Iced"}.
func NewOrderLine(
	menuItemID kernel.UUID,
	quantity int,
	selectedOptions map[string]string,
	note string,
) (OrderLine, error) {
	line := OrderLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setMenuItemID(menuItemID),
		line.setQuantity(quantity),
		line.setNote(note),
	); err != nil {
		return OrderLine{}, err
	}

	line.selectedOptions = make(map[string]string, len(selectedOptions))
	for optionType, optionName := range selectedOptions {
		if optionType == "" || optionName == "" {
			return OrderLine{}, errs.NewValueIsRequiredError("selectedOptions")
		}
		line.selectedOptions[optionType] = optionName
	}

	return line, nil
}

// Validate ensures the line was created through the constructor.
func (l OrderLine) Validate() error {
	return l.guard.Validate(ErrOrderLineIsNotConstructed)
}

// MenuItemID returns the referenced catalog item id.
func (l OrderLine) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// Quantity returns the requested quantity.
func (l OrderLine) Quantity() int {
	return l.quantity
}

// SelectedOptionTypes returns the option type labels of the selections in
// deterministic (sorted) order, so snapshot order is stable.
func (l OrderLine) SelectedOptionTypes() []string {
	types := make([]string, 0, len(l.selectedOptions))
	for optionType := range l.selectedOptions {
		types = append(types, optionType)
	}
	sort.Strings(types)
	return types
}

// SelectedOption returns the chosen option name for an option type.
func (l OrderLine) SelectedOption(optionType string) string {
	return l.selectedOptions[optionType]
}

// Note returns the optional free-text note.
func (l OrderLine) Note() string {
	return l.note
}

func (l *OrderLine) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	l.menuItemID = menuItemID
	return nil
}

func (l *OrderLine) setQuantity(quantity int) error {
	if quantity < order.MinQuantity || quantity > order.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, order.MinQuantity, order.MaxQuantity)
	}
	l.quantity = quantity
	return nil
}

func (l *OrderLine) setNote(note string) error {
	if length := len([]rune(note)); length > order.MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note", length, 0, order.MaxNoteLength)
	}
	l.note = note
	return nil
}

// CreateOrderCommand represents a request to create a new order from a raw
// cart. The command carries no prices; pricing happens against the catalog
// snapshot inside the handler's transaction.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerName string
	lines        []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the customer name is non-empty and within bounds, the
// cart is non-empty, and every line was properly constructed.
func NewCreateOrderCommand(customerName string, lines []OrderLine) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCustomerName(customerName); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := cmd.setLines(lines); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerName returns the display name the order is placed under.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Lines returns the raw cart lines in cart order.
func (c CreateOrderCommand) Lines() []OrderLine {
	return append([]OrderLine(nil), c.lines...)
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if length := len([]rune(customerName)); length > order.MaxCustomerNameLength {
		return errs.NewValueIsOutOfRangeError("customerName", length, 1, order.MaxCustomerNameLength)
	}
	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	c.lines = append([]OrderLine(nil), lines...)
	return nil
}
