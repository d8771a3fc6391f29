package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/menu"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/services"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/ports"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// CreateOrderCommandHandler processes order placement. It resolves every
// cart line against the catalog, snapshots names and prices into the
// order, computes totals server-side, persists the aggregate in one
// transaction and announces the new order after commit.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	pricing    services.PricingEngine
}

// NewCreateOrderCommandHandler creates a handler instance with its
// dependencies.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) (CreateOrderCommandHandler, error) {
	if uowFactory == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if publisher == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("publisher")
	}

	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		pricing:    services.NewPricingEngine(),
	}, nil
}

// Handle executes the order creation workflow and returns the persisted
// aggregate.
//
// Catalog resolution and the order insert run inside one transaction, so
// the snapshotted prices and the stored order reflect a single consistent
// catalog view. The created event is published strictly after commit.
func (h CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, classifyStoreError("begin create order", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	items, err := h.buildItems(ctx, uow.MenuRepository(), cmd.Lines())
	if err != nil {
		return nil, err
	}

	lineTotals := make([]kernel.Money, 0, len(items))
	for _, item := range items {
		lineTotals = append(lineTotals, item.LineTotal())
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerName(), items, h.pricing.PriceOrder(lineTotals))
	if err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, classifyStoreError("add order", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, classifyStoreError("commit create order", err)
	}
	committed = true

	h.publisher.PublishOrderCreated(aggregate)

	return aggregate, nil
}

// buildItems resolves each cart line against the catalog and prices it.
// Unknown items and unknown or unavailable options are validation
// failures of the request, not store failures.
func (h CreateOrderCommandHandler) buildItems(
	ctx context.Context,
	menuRepo ports.MenuRepository,
	lines []OrderLine,
) ([]order.OrderItem, error) {
	items := make([]order.OrderItem, 0, len(lines))

	for _, line := range lines {
		catalogItem, err := menuRepo.GetItem(ctx, line.MenuItemID())
		if err != nil {
			var notFound *errs.ObjectNotFoundError
			if errors.As(err, &notFound) {
				return nil, errs.NewValueIsInvalidErrorWithCause("menuItemId", err)
			}
			return nil, classifyStoreError("resolve menu item", err)
		}

		snapshots, err := h.resolveOptions(ctx, menuRepo, line, catalogItem)
		if err != nil {
			return nil, err
		}

		lineTotal, err := h.pricing.PriceLine(catalogItem.BasePrice, line.Quantity(), snapshots)
		if err != nil {
			return nil, err
		}

		item, err := order.NewOrderItem(
			kernel.NewUUID(),
			catalogItem.Name,
			catalogItem.BasePrice,
			line.Quantity(),
			snapshots,
			line.Note(),
			lineTotal,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// resolveOptions matches the line's selections against the item's catalog
// options and snapshots the matched prices in deterministic option type
// order.
func (h CreateOrderCommandHandler) resolveOptions(
	ctx context.Context,
	menuRepo ports.MenuRepository,
	line OrderLine,
	catalogItem menu.Item,
) ([]order.OptionSnapshot, error) {
	optionTypes := line.SelectedOptionTypes()
	if len(optionTypes) == 0 {
		return nil, nil
	}

	catalogOptions, err := menuRepo.GetOptions(ctx, catalogItem.ID)
	if err != nil {
		return nil, classifyStoreError("resolve menu options", err)
	}

	snapshots := make([]order.OptionSnapshot, 0, len(optionTypes))
	for _, optionType := range optionTypes {
		optionName := line.SelectedOption(optionType)

		matched, ok := findOption(catalogOptions, optionType, optionName)
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"selectedOptions",
				fmt.Errorf("item %q has no option %q of type %q", catalogItem.Name, optionName, optionType),
			)
		}
		if !matched.Available {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"selectedOptions",
				fmt.Errorf("option %q of type %q is currently unavailable", optionName, optionType),
			)
		}

		snapshot, err := order.NewOptionSnapshot(matched.OptionType, matched.Name, matched.PriceAdjustment)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func findOption(catalogOptions []menu.Option, optionType, name string) (menu.Option, bool) {
	for _, opt := range catalogOptions {
		if opt.OptionType == optionType && opt.Name == name {
			return opt, true
		}
	}
	return menu.Option{}, false
}
