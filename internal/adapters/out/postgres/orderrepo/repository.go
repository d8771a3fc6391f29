package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM. When
// created by the unit of work it operates on the transaction's connection,
// so an order and its items are always written and removed together.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and all of its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Get retrieves an order by ID with its items in cart order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order like Get but locks the order row for the
// duration of the enclosing transaction, so concurrent status changes on
// the same order are linearized by the store.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	err := tx.Preload("Items", sortItems).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus persists the aggregate's current status in a single atomic
// update. Items and total are immutable after creation and never rewritten.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return nil
}

// Archive copies the order and its items into the history tables and
// deletes them from the live store. Caller-supplied transactions make the
// copy-and-delete atomic.
func (r *GormOrderRepository) Archive(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)

	var dto OrderDTO
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", sortItems).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	history := historyFromLive(dto, time.Now().UTC())
	if err = tx.Create(&history).Error; err != nil {
		return nil, err
	}

	if err = tx.Delete(&OrderItemDTO{}, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}
	if err = tx.Delete(&OrderDTO{}, "id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetIDsCreatedBefore returns the ids of live orders created strictly
// before the cutoff, oldest first.
func (r *GormOrderRepository) GetIDsCreatedBefore(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, u := range raw {
		id, idErr := kernel.UUIDFromBytes(u[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// sortItems keeps preloaded items in cart order.
func sortItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
