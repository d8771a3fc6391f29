// Package queries contains read-only operations for retrieving order data.
// Implements the query side of CQRS: handlers read the database directly
// and return response structs shaped for presentation, bypassing the
// aggregate repositories.
package queries

import (
	"errors"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves live orders for the staff board, optionally
// narrowed to a single status.
type GetOrdersQuery struct {
	status    order.Status
	hasStatus bool

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query that retrieves all live orders.
func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOrdersQueryWithStatus creates a query that retrieves only live
// orders in the given status.
func NewGetOrdersQueryWithStatus(status order.Status) (GetOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		status:    status,
		hasStatus: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// HasStatusFilter reports whether the query narrows by status.
func (q GetOrdersQuery) HasStatusFilter() bool {
	return q.hasStatus
}

// Status returns the status filter. Only meaningful when HasStatusFilter
// is true.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

// OrderResponse is a fully hydrated live order as shown on the staff
// board, with items in cart order.
type OrderResponse struct {
	ID           kernel.UUID
	CustomerName string
	Status       order.Status
	Total        kernel.Money
	CreatedAt    time.Time
	Items        []OrderItemResponse
}

// OrderItemResponse is one line of an order with its option snapshot.
type OrderItemResponse struct {
	ID        kernel.UUID
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	Options   []OptionResponse
	Note      string
	LineTotal kernel.Money
}

// OptionResponse is one selected option as captured at order time.
type OptionResponse struct {
	OptionType      string
	Name            string
	PriceAdjustment kernel.Money
}
