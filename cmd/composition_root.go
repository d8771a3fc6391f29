package cmd

import (
	"log/slog"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/in/ws"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/eventbus"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/postgres"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/application/usecases/commands"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *eventbus.Bus
	registry   *ws.ConnectionRegistry
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	bus := eventbus.NewBus(configs.EventBufferSize, logger)
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        bus,
		registry:   ws.NewConnectionRegistry(bus, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) EventBus() *eventbus.Bus {
	return c.bus
}

func (c *CompositionRoot) ConnectionRegistry() *ws.ConnectionRegistry {
	return c.registry
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() (commands.CreateOrderCommandHandler, error) {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() (commands.UpdateOrderStatusCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateArchiveOrderCommandHandler() (commands.ArchiveOrderCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArchiveOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateArchiveStaleOrdersCommandHandler() (commands.ArchiveStaleOrdersCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArchiveStaleOrdersCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
