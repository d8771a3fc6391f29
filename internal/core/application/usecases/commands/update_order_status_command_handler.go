package commands

import (
	"context"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/ports"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler moves an order along its lifecycle. The
// order row is locked for the duration of the transaction, so two staff
// devices acting on the same order at once are serialized and each
// transition is checked against the status the previous writer left
// behind.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler instance with its
// dependencies.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) (UpdateOrderStatusCommandHandler, error) {
	if uowFactory == nil {
		return UpdateOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if publisher == nil {
		return UpdateOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("publisher")
	}

	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}, nil
}

// Handle executes the status change and returns the resulting aggregate.
//
// Requesting the status the order already has is a no-op: the call
// succeeds, nothing is written and no event is published. An illegal
// transition fails with *errs.IllegalTransitionError and leaves the order
// untouched.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, classifyStoreError("begin update order status", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, classifyStoreError("get order for update", err)
	}

	changed, err := aggregate.TransitionTo(cmd.Target())
	if err != nil {
		return nil, err
	}

	if changed {
		if err := repo.UpdateStatus(ctx, aggregate); err != nil {
			return nil, classifyStoreError("update order status", err)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, classifyStoreError("commit update order status", err)
	}
	committed = true

	if changed {
		h.publisher.PublishOrderUpdated(aggregate)
	}

	return aggregate, nil
}
