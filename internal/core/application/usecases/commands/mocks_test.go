package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"coffeeshop/internal/core/application/usecases/commands"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/model/product"
	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByToken(ctx context.Context, token string) (*order.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) RedeemByToken(ctx context.Context, token string) (*order.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// fakeSessionStore is a map-backed store for handler tests where mock
// choreography would only obscure the behavior under test.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*session.Session)}
}

func (s *fakeSessionStore) Get(_ context.Context, identity string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found, ok := s.sessions[identity]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", identity)
	}
	return found, nil
}

func (s *fakeSessionStore) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Identity()] = sess
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, identity)
	return nil
}

func (s *fakeSessionStore) PruneExpired(_ context.Context, _ time.Time, _ time.Duration) (int, error) {
	return 0, nil
}

type fakeCatalog struct {
	mu       sync.Mutex
	products map[kernel.UUID]*product.Product
}

func newFakeCatalog(products ...*product.Product) *fakeCatalog {
	c := &fakeCatalog{products: make(map[kernel.UUID]*product.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) GetProduct(_ context.Context, id kernel.UUID) (*product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return p, nil
}

func (c *fakeCatalog) ListAvailable(_ context.Context) ([]*product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	available := make([]*product.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Available {
			available = append(available, p)
		}
	}
	return available, nil
}

func (c *fakeCatalog) Add(_ context.Context, p *product.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
	return nil
}

func (c *fakeCatalog) remove(id kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
}

// fakeOrderStore backs concurrency tests with a mutex-guarded conditional
// update, mirroring the atomicity contract of RedeemByToken.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*order.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*order.Order)}
}

func (s *fakeOrderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = o
	return nil
}

func (s *fakeOrderStore) Update(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = o
	return nil
}

func (s *fakeOrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (s *fakeOrderStore) GetByToken(_ context.Context, token string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.Token() == token {
			return o, nil
		}
	}
	return nil, order.ErrTokenNotFound
}

func (s *fakeOrderStore) RedeemByToken(_ context.Context, token string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.Token() == token {
			if err := o.Complete(); err != nil {
				return nil, err
			}
			return o, nil
		}
	}
	return nil, order.ErrTokenNotFound
}

func testLatte() *product.Product {
	return &product.Product{
		ID:        kernel.NewUUID(),
		Name:      "Latte",
		Category:  product.CategoryHot,
		BasePrice: 4.75,
		Sizes: []product.Size{
			{Name: "small", PriceModifier: -0.50},
			{Name: "medium", PriceModifier: 0},
			{Name: "large", PriceModifier: 0.50},
		},
		AddOns: []product.AddOn{
			{Name: "extra shot", Price: 0.75},
			{Name: "whipped cream", Price: 0.50},
		},
		Available: true,
	}
}

type fakeOrderUoW struct{ repo ports.OrderRepository }

func (u fakeOrderUoW) Begin(context.Context) error              { return nil }
func (u fakeOrderUoW) Commit(context.Context) error             { return nil }
func (u fakeOrderUoW) Rollback(context.Context) error           { return nil }
func (u fakeOrderUoW) OrderRepository() ports.OrderRepository   { return u.repo }

type fakeOrderUoWFactory struct{ repo ports.OrderRepository }

func (f fakeOrderUoWFactory) Create() commands.OrderUoW { return fakeOrderUoW{repo: f.repo} }

// failingOrderUoW simulates a persistence outage at transaction start.
type failingOrderUoW struct{ err error }

func (u failingOrderUoW) Begin(context.Context) error            { return u.err }
func (u failingOrderUoW) Commit(context.Context) error           { return nil }
func (u failingOrderUoW) Rollback(context.Context) error         { return nil }
func (u failingOrderUoW) OrderRepository() ports.OrderRepository { return nil }

type failingOrderUoWFactory struct{ err error }

func (f failingOrderUoWFactory) Create() commands.OrderUoW { return failingOrderUoW{err: f.err} }
