package commands

import (
	"context"
	"errors"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/ports"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// ArchiveStaleOrdersCommandHandler runs the end-of-day sweep. Each order
// is archived in its own transaction, oldest first, so one problematic
// row cannot hold a lock across the whole batch or roll back orders that
// were already moved.
type ArchiveStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewArchiveStaleOrdersCommandHandler creates a handler instance with its
// dependencies.
func NewArchiveStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) (ArchiveStaleOrdersCommandHandler, error) {
	if uowFactory == nil {
		return ArchiveStaleOrdersCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if publisher == nil {
		return ArchiveStaleOrdersCommandHandler{}, errs.NewValueIsRequiredError("publisher")
	}

	return ArchiveStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}, nil
}

// Handle archives every order created before the cutoff and returns how
// many were moved. An order that disappears between listing and archival,
// e.g. deleted manually from another session, is skipped. A deleted event
// is published per archived order after its transaction commits.
func (h ArchiveStaleOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ArchiveStaleOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.listStaleIDs(ctx, cmd)
	if err != nil {
		return 0, err
	}

	archived := 0
	for _, id := range ids {
		moved, err := h.archiveOne(ctx, id)
		if err != nil {
			return archived, err
		}
		if moved {
			archived++
		}
	}

	return archived, nil
}

func (h ArchiveStaleOrdersCommandHandler) listStaleIDs(
	ctx context.Context,
	cmd ArchiveStaleOrdersCommand,
) ([]kernel.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, classifyStoreError("begin list stale orders", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	ids, err := uow.OrderRepository().GetIDsCreatedBefore(ctx, cmd.Cutoff())
	if err != nil {
		return nil, classifyStoreError("list stale orders", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, classifyStoreError("commit list stale orders", err)
	}
	committed = true

	return ids, nil
}

func (h ArchiveStaleOrdersCommandHandler) archiveOne(ctx context.Context, id kernel.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, classifyStoreError("begin archive stale order", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	aggregate, err := uow.OrderRepository().Archive(ctx, id)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, classifyStoreError("archive stale order", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return false, classifyStoreError("commit archive stale order", err)
	}
	committed = true

	h.publisher.PublishOrderDeleted(aggregate)

	return true, nil
}
