// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and the relational
// tables, including the parallel history tables populated by archival.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database row for a live order. Monetary amounts
// are stored as integer satang.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerName string
	Status       int `gorm:"index"`
	Total        int64
	CreatedAt    time.Time      `gorm:"index"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for live orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line of an order. Position preserves cart
// order across reads; SelectedOptions is the structured option snapshot
// serialized as jsonb.
type OrderItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	Position        int
	Name            string
	UnitPrice       int64
	Quantity        int
	SelectedOptions OptionSnapshots `gorm:"type:jsonb"`
	Note            string
	LineTotal       int64
}

// TableName specifies the database table name for live order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderHistoryDTO mirrors OrderDTO in the history store. Rows are written
// only by archival and never mutated afterwards.
type OrderHistoryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerName string
	Status       int
	Total        int64
	CreatedAt    time.Time
	ArchivedAt   time.Time
	Items        []OrderHistoryItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for archived orders.
func (OrderHistoryDTO) TableName() string {
	return "order_history"
}

// OrderHistoryItemDTO mirrors OrderItemDTO in the history store.
type OrderHistoryItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	Position        int
	Name            string
	UnitPrice       int64
	Quantity        int
	SelectedOptions OptionSnapshots `gorm:"type:jsonb"`
	Note            string
	LineTotal       int64
}

// TableName specifies the database table name for archived order items.
func (OrderHistoryItemDTO) TableName() string {
	return "order_history_items"
}

// OptionSnapshotDTO is the persisted form of one selected option.
type OptionSnapshotDTO struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	PriceAdjustment int64  `json:"price_adjustment"`
}

// OptionSnapshots serializes a list of option snapshots into a single
// jsonb column, keeping the snapshot structured instead of free-form.
type OptionSnapshots []OptionSnapshotDTO

// Value implements driver.Valuer for jsonb storage.
func (o OptionSnapshots) Value() (driver.Value, error) {
	if o == nil {
		o = OptionSnapshots{}
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner for jsonb retrieval.
func (o *OptionSnapshots) Scan(value any) error {
	if value == nil {
		*o = OptionSnapshots{}
		return nil
	}

	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, o)
	case string:
		return json.Unmarshal([]byte(raw), o)
	default:
		return fmt.Errorf("cannot scan %T into OptionSnapshots", value)
	}
}

// fromDomain converts an order aggregate to its live-store representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			ID:              item.ID().Bytes(),
			OrderID:         aggregate.ID().Bytes(),
			Position:        i,
			Name:            item.Name(),
			UnitPrice:       item.UnitPrice().Satang(),
			Quantity:        item.Quantity(),
			SelectedOptions: optionsFromDomain(item.Options()),
			Note:            item.Note(),
			LineTotal:       item.LineTotal().Satang(),
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerName: aggregate.CustomerName(),
		Status:       int(aggregate.Status()),
		Total:        aggregate.Total().Satang(),
		CreatedAt:    aggregate.CreatedAt(),
		Items:        itemDTOs,
	}
}

// toDomain reconstructs the aggregate from its live-store representation.
// Items are expected to be loaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoneyFromSatang(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.CustomerName, order.Status(dto.Status), total, items, dto.CreatedAt)
}

func itemToDomain(dto OrderItemDTO) (order.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.OrderItem{}, err
	}

	unitPrice, err := kernel.NewMoneyFromSatang(dto.UnitPrice)
	if err != nil {
		return order.OrderItem{}, err
	}

	options, err := optionsToDomain(dto.SelectedOptions)
	if err != nil {
		return order.OrderItem{}, err
	}

	lineTotal, err := kernel.NewMoneyFromSatang(dto.LineTotal)
	if err != nil {
		return order.OrderItem{}, err
	}

	return order.NewOrderItem(id, dto.Name, unitPrice, dto.Quantity, options, dto.Note, lineTotal)
}

func optionsFromDomain(options []order.OptionSnapshot) OptionSnapshots {
	dtos := make(OptionSnapshots, 0, len(options))
	for _, opt := range options {
		dtos = append(dtos, OptionSnapshotDTO{
			Type:            opt.OptionType(),
			Name:            opt.Name(),
			PriceAdjustment: opt.PriceAdjustment().Satang(),
		})
	}
	return dtos
}

func optionsToDomain(dtos OptionSnapshots) ([]order.OptionSnapshot, error) {
	options := make([]order.OptionSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		adjustment, err := kernel.NewMoneyFromSatang(dto.PriceAdjustment)
		if err != nil {
			return nil, err
		}
		opt, err := order.NewOptionSnapshot(dto.Type, dto.Name, adjustment)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, nil
}

// historyFromLive maps a live order row, with its items, into the history
// tables at archival time.
func historyFromLive(dto OrderDTO, archivedAt time.Time) OrderHistoryDTO {
	items := make([]OrderHistoryItemDTO, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, OrderHistoryItemDTO{
			ID:              item.ID,
			OrderID:         item.OrderID,
			Position:        item.Position,
			Name:            item.Name,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			SelectedOptions: item.SelectedOptions,
			Note:            item.Note,
			LineTotal:       item.LineTotal,
		})
	}

	return OrderHistoryDTO{
		ID:           dto.ID,
		CustomerName: dto.CustomerName,
		Status:       dto.Status,
		Total:        dto.Total,
		CreatedAt:    dto.CreatedAt,
		ArchivedAt:   archivedAt,
		Items:        items,
	}
}
