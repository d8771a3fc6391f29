package http

import (
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/application/usecases/queries"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
)

// CreateOrderRequest is the body of POST /api/v1/orders. Clients send only
// catalog references and choices; names and prices come from the catalog
// on the server side.
type CreateOrderRequest struct {
	CustomerName string                   `json:"customer_name" validate:"required,max=100"`
	Items        []CreateOrderItemRequest `json:"items"         validate:"required,min=1,dive"`
}

// CreateOrderItemRequest is one cart line of a create request.
type CreateOrderItemRequest struct {
	MenuItemID      string            `json:"menu_item_id"              validate:"required,uuid"`
	Quantity        int               `json:"quantity"                  validate:"required,min=1,max=100"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
	Note            string            `json:"note,omitempty"            validate:"max=500"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/orders/:id/status.
// Status is the canonical form, e.g. "preparing".
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse is the JSON shape of an order in HTTP responses. Amounts
// are integer satang; status carries the canonical value and the Thai
// display form.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	Status        string              `json:"status"`
	StatusDisplay string              `json:"status_display"`
	TotalSatang   int64               `json:"total_satang"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one order line in HTTP responses.
type OrderItemResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	UnitPriceSatang int64            `json:"unit_price_satang"`
	Quantity        int              `json:"quantity"`
	SelectedOptions []OptionResponse `json:"selected_options"`
	Note            string           `json:"note,omitempty"`
	LineTotalSatang int64            `json:"line_total_satang"`
}

// OptionResponse is one selected option in HTTP responses.
type OptionResponse struct {
	Type             string `json:"type"`
	Name             string `json:"name"`
	AdjustmentSatang int64  `json:"price_adjustment_satang"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// orderFromAggregate maps a freshly mutated aggregate onto the response
// shape.
func orderFromAggregate(aggregate *order.Order) OrderResponse {
	items := aggregate.Items()
	itemResponses := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		options := item.Options()
		optionResponses := make([]OptionResponse, 0, len(options))
		for _, opt := range options {
			optionResponses = append(optionResponses, OptionResponse{
				Type:             opt.OptionType(),
				Name:             opt.Name(),
				AdjustmentSatang: opt.PriceAdjustment().Satang(),
			})
		}
		itemResponses = append(itemResponses, OrderItemResponse{
			ID:              item.ID().String(),
			Name:            item.Name(),
			UnitPriceSatang: item.UnitPrice().Satang(),
			Quantity:        item.Quantity(),
			SelectedOptions: optionResponses,
			Note:            item.Note(),
			LineTotalSatang: item.LineTotal().Satang(),
		})
	}

	return OrderResponse{
		ID:            aggregate.ID().String(),
		CustomerName:  aggregate.CustomerName(),
		Status:        aggregate.Status().String(),
		StatusDisplay: aggregate.Status().DisplayThai(),
		TotalSatang:   aggregate.Total().Satang(),
		CreatedAt:     aggregate.CreatedAt(),
		Items:         itemResponses,
	}
}

// orderFromQuery maps a read-side row onto the response shape.
func orderFromQuery(row queries.OrderResponse) OrderResponse {
	itemResponses := make([]OrderItemResponse, 0, len(row.Items))
	for _, item := range row.Items {
		optionResponses := make([]OptionResponse, 0, len(item.Options))
		for _, opt := range item.Options {
			optionResponses = append(optionResponses, OptionResponse{
				Type:             opt.OptionType,
				Name:             opt.Name,
				AdjustmentSatang: opt.PriceAdjustment.Satang(),
			})
		}
		itemResponses = append(itemResponses, OrderItemResponse{
			ID:              item.ID.String(),
			Name:            item.Name,
			UnitPriceSatang: item.UnitPrice.Satang(),
			Quantity:        item.Quantity,
			SelectedOptions: optionResponses,
			Note:            item.Note,
			LineTotalSatang: item.LineTotal.Satang(),
		})
	}

	return OrderResponse{
		ID:            row.ID.String(),
		CustomerName:  row.CustomerName,
		Status:        row.Status.String(),
		StatusDisplay: row.Status.DisplayThai(),
		TotalSatang:   row.Total.Satang(),
		CreatedAt:     row.CreatedAt,
		Items:         itemResponses,
	}
}
