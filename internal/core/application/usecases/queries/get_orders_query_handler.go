package queries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves live orders from the database. Orders
// come back oldest first, the way the preparation queue works through
// them, with items hydrated in cart order.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for live order listing.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the matching orders.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	listing := h.db.WithContext(ctx).
		Table("orders").
		Select("id, customer_name, status, total, created_at").
		Order("created_at, id")
	if query.HasStatusFilter() {
		listing = listing.Where("status = ?", int(query.Status()))
	}

	rows, err := listing.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var (
			id           uuid.UUID
			customerName string
			status       int
			total        int64
			createdAt    time.Time
		)

		if err = rows.Scan(&id, &customerName, &status, &total, &createdAt); err != nil {
			return nil, err
		}

		resp, respErr := newOrderResponse(id, customerName, status, total, createdAt)
		if respErr != nil {
			return nil, respErr
		}

		orders = append(orders, resp)
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := loadItems(ctx, h.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID.Bytes()]
	}

	return orders, nil
}

func newOrderResponse(
	id uuid.UUID,
	customerName string,
	status int,
	total int64,
	createdAt time.Time,
) (OrderResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}

	totalMoney, err := kernel.NewMoneyFromSatang(total)
	if err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:           orderID,
		CustomerName: customerName,
		Status:       order.Status(status),
		Total:        totalMoney,
		CreatedAt:    createdAt,
		Items:        []OrderItemResponse{},
	}, nil
}

// optionRow matches the jsonb shape of a persisted option snapshot.
type optionRow struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	PriceAdjustment int64  `json:"price_adjustment"`
}

// loadItems hydrates the items of the given orders in one pass, keyed by
// order id, each list in cart order.
func loadItems(
	ctx context.Context,
	db *gorm.DB,
	orderIDs []uuid.UUID,
) (map[uuid.UUID][]OrderItemResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			id,
			name,
			unit_price,
			quantity,
			selected_options,
			note,
			line_total
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itemsByOrder := make(map[uuid.UUID][]OrderItemResponse, len(orderIDs))

	for rows.Next() {
		var (
			orderID    uuid.UUID
			itemID     uuid.UUID
			name       string
			unitPrice  int64
			quantity   int
			optionsRaw []byte
			note       string
			lineTotal  int64
		)

		err = rows.Scan(&orderID, &itemID, &name, &unitPrice, &quantity, &optionsRaw, &note, &lineTotal)
		if err != nil {
			return nil, err
		}

		item, itemErr := newOrderItemResponse(itemID, name, unitPrice, quantity, optionsRaw, note, lineTotal)
		if itemErr != nil {
			return nil, itemErr
		}

		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return itemsByOrder, nil
}

func newOrderItemResponse(
	itemID uuid.UUID,
	name string,
	unitPrice int64,
	quantity int,
	optionsRaw []byte,
	note string,
	lineTotal int64,
) (OrderItemResponse, error) {
	id, err := kernel.UUIDFromBytes(itemID[:])
	if err != nil {
		return OrderItemResponse{}, err
	}

	unitPriceMoney, err := kernel.NewMoneyFromSatang(unitPrice)
	if err != nil {
		return OrderItemResponse{}, err
	}

	lineTotalMoney, err := kernel.NewMoneyFromSatang(lineTotal)
	if err != nil {
		return OrderItemResponse{}, err
	}

	var optionRows []optionRow
	if len(optionsRaw) > 0 {
		if err = json.Unmarshal(optionsRaw, &optionRows); err != nil {
			return OrderItemResponse{}, err
		}
	}

	options := make([]OptionResponse, 0, len(optionRows))
	for _, opt := range optionRows {
		adjustment, adjErr := kernel.NewMoneyFromSatang(opt.PriceAdjustment)
		if adjErr != nil {
			return OrderItemResponse{}, adjErr
		}
		options = append(options, OptionResponse{
			OptionType:      opt.Type,
			Name:            opt.Name,
			PriceAdjustment: adjustment,
		})
	}

	return OrderItemResponse{
		ID:        id,
		Name:      name,
		UnitPrice: unitPriceMoney,
		Quantity:  quantity,
		Options:   options,
		Note:      note,
		LineTotal: lineTotalMoney,
	}, nil
}
