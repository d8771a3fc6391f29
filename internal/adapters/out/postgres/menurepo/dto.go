// Package menurepo provides the read-only catalog lookup used during order
// creation. It maps the menu_items and menu_options tables into the menu
// read model; catalog writes belong to the external catalog service.
package menurepo

import (
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// MenuItemDTO represents a catalog entry row. Prices are stored as integer
// satang.
type MenuItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	BasePrice int64
	Category  string
}

// TableName specifies the database table name for catalog entries.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// MenuOptionDTO represents one selectable option of a catalog entry.
type MenuOptionDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID      uuid.UUID `gorm:"type:uuid;index"`
	OptionType      string
	Name            string
	PriceAdjustment int64
	Available       bool
}

// TableName specifies the database table name for catalog options.
func (MenuOptionDTO) TableName() string {
	return "menu_options"
}

func itemToDomain(dto MenuItemDTO) (menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return menu.Item{}, err
	}

	basePrice, err := kernel.NewMoneyFromSatang(dto.BasePrice)
	if err != nil {
		return menu.Item{}, err
	}

	return menu.Item{
		ID:        id,
		Name:      dto.Name,
		BasePrice: basePrice,
		Category:  dto.Category,
	}, nil
}

func optionToDomain(dto MenuOptionDTO) (menu.Option, error) {
	adjustment, err := kernel.NewMoneyFromSatang(dto.PriceAdjustment)
	if err != nil {
		return menu.Option{}, err
	}

	return menu.Option{
		OptionType:      dto.OptionType,
		Name:            dto.Name,
		PriceAdjustment: adjustment,
		Available:       dto.Available,
	}, nil
}
