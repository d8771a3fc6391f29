package menurepo

import (
	"context"
	"errors"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/menu"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMenuRepository implements ports.MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GORM menu repository.
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// GetItem retrieves a catalog entry by ID.
func (r *GormMenuRepository) GetItem(ctx context.Context, id kernel.UUID) (menu.Item, error) {
	if err := id.Validate(); err != nil {
		return menu.Item{}, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return menu.Item{}, errs.NewObjectNotFoundError("menuItem", id.String())
		}
		return menu.Item{}, err
	}

	return itemToDomain(dto)
}

// GetOptions retrieves all options of a catalog entry, available or not.
func (r *GormMenuRepository) GetOptions(ctx context.Context, itemID kernel.UUID) ([]menu.Option, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MenuOptionDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "menu_item_id = ?", itemID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	options := make([]menu.Option, 0, len(dtos))
	for _, dto := range dtos {
		option, optErr := optionToDomain(dto)
		if optErr != nil {
			return nil, optErr
		}
		options = append(options, option)
	}

	return options, nil
}
