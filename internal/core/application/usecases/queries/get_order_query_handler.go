package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single live order from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookup.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns *errs.ObjectNotFoundError when the
// order is not in the live store; archived orders are gone from here.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var (
		id           uuid.UUID
		customerName string
		status       int
		total        int64
		createdAt    time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, customer_name, status, total, created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&id, &customerName, &status, &total, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundErrorWithCause("orderId", query.OrderID(), err)
	}
	if err != nil {
		return OrderResponse{}, err
	}

	resp, err := newOrderResponse(id, customerName, status, total, createdAt)
	if err != nil {
		return OrderResponse{}, err
	}

	itemsByOrder, err := loadItems(ctx, h.db, []uuid.UUID{id})
	if err != nil {
		return OrderResponse{}, err
	}
	resp.Items = itemsByOrder[id]
	if resp.Items == nil {
		resp.Items = []OrderItemResponse{}
	}

	return resp, nil
}
