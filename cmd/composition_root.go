package cmd

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	memorystore "coffeeshop/internal/adapters/out/memory/sessionstore"
	"coffeeshop/internal/adapters/out/postgres"
	"coffeeshop/internal/adapters/out/postgres/productrepo"
	redisstore "coffeeshop/internal/adapters/out/redis/sessionstore"
	"coffeeshop/internal/core/application/usecases/commands"
	"coffeeshop/internal/core/application/usecases/queries"
	"coffeeshop/internal/core/domain/services"
	"coffeeshop/internal/core/ports"
)

// CompositionRoot wires adapters and use cases together. Handlers created
// here share one session store, one lock registry and one unit of work
// factory.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	catalog     ports.ProductCatalog
	store       ports.SessionStore
	locks       *commands.SessionLocks
	assembler   services.OrderAssembler
	idleTimeout time.Duration
}

// NewCompositionRoot builds the object graph. When cfg.RedisAddr is set,
// sessions are stored in Redis with a TTL equal to the idle timeout;
// otherwise they live in process memory and rely on the janitor sweep.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	var store ports.SessionStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store = redisstore.NewRedisSessionStore(client, cfg.SessionIdleTimeout)
		logger.Info("session store: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		store = memorystore.NewInMemorySessionStore()
		logger.Info("session store: in-memory")
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:     productrepo.NewGormProductRepository(gormDB),
		store:       store,
		locks:       commands.NewSessionLocks(),
		assembler:   services.NewOrderAssembler(),
		idleTimeout: cfg.SessionIdleTimeout,
	}
}

// SessionStore exposes the shared store for the janitor job.
func (c *CompositionRoot) SessionStore() ports.SessionStore {
	return c.store
}

// ProductCatalog exposes the catalog for the HTTP layer and seeding.
func (c *CompositionRoot) ProductCatalog() ports.ProductCatalog {
	return c.catalog
}

func (c *CompositionRoot) CreateStartSessionCommandHandler() commands.StartSessionCommandHandler {
	return commands.NewStartSessionCommandHandler(c.store, c.catalog, c.locks, c.idleTimeout)
}

func (c *CompositionRoot) CreateSubmitInputCommandHandler() commands.SubmitInputCommandHandler {
	return commands.NewSubmitInputCommandHandler(c.store, c.catalog, c.locks, c.idleTimeout)
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(
		c.orderUoWFactory(), c.store, c.catalog, c.locks, c.assembler, c.idleTimeout)
}

func (c *CompositionRoot) CreateVerifyTokenCommandHandler() commands.VerifyTokenCommandHandler {
	return commands.NewVerifyTokenCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetAwaitingPickupOrdersQueryHandler() queries.GetAwaitingPickupOrdersQueryHandler {
	return queries.NewGetAwaitingPickupOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
