package commands

import (
	"context"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/ports"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// ArchiveOrderCommandHandler moves one order into history. The copy into
// the history tables and the delete from the live store happen in a
// single transaction, so an order is never visible in both places or in
// neither.
type ArchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewArchiveOrderCommandHandler creates a handler instance with its
// dependencies.
func NewArchiveOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) (ArchiveOrderCommandHandler, error) {
	if uowFactory == nil {
		return ArchiveOrderCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if publisher == nil {
		return ArchiveOrderCommandHandler{}, errs.NewValueIsRequiredError("publisher")
	}

	return ArchiveOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}, nil
}

// Handle archives the order and returns its final snapshot. After commit
// a deleted event is published so live boards drop the order.
func (h ArchiveOrderCommandHandler) Handle(
	ctx context.Context,
	cmd ArchiveOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, classifyStoreError("begin archive order", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	aggregate, err := uow.OrderRepository().Archive(ctx, cmd.OrderID())
	if err != nil {
		return nil, classifyStoreError("archive order", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, classifyStoreError("commit archive order", err)
	}
	committed = true

	h.publisher.PublishOrderDeleted(aggregate)

	return aggregate, nil
}
