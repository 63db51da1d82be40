package commands_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coffeeshop/internal/core/application/usecases/commands"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
)

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "user-1", []order.Item{{
		ProductID:   kernel.NewUUID(),
		ProductName: "Latte",
		Size:        "large",
		SugarLevel:  "low",
		UnitPrice:   6.00,
		Quantity:    2,
		Subtotal:    12.00,
		Preparation: 5 * time.Minute,
	}}, 12.00, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.AwaitPickup())
	return o
}

func TestVerifyTokenCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t)
	cmd, _ := commands.NewVerifyTokenCommand(o.Token())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	completed := *o
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("RedeemByToken", ctx, o.Token()).Return(&completed, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyTokenCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.IsEqual(o))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestVerifyTokenCommandHandler_Handle_UnknownToken(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewVerifyTokenCommand("no-such-token")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("RedeemByToken", ctx, "no-such-token").Return(nil, order.ErrTokenNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyTokenCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, order.ErrTokenNotFound)
}

func TestVerifyTokenCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewVerifyTokenCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.VerifyTokenCommand{})
	require.Error(t, err)
}

func TestVerifyTokenCommandHandler_Handle_SecondPresentationRejected(t *testing.T) {
	ctx := t.Context()
	orders := newFakeOrderStore()
	o := placedOrder(t)
	require.NoError(t, orders.Add(ctx, o))

	h := commands.NewVerifyTokenCommandHandler(fakeOrderUoWFactory{repo: orders})
	cmd, _ := commands.NewVerifyTokenCommand(o.Token())

	first, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, first.Status())
	assert.True(t, first.IsRedeemed())

	_, err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, order.ErrAlreadyRedeemed)
}

func TestVerifyTokenCommandHandler_Handle_CancelledOrderToken(t *testing.T) {
	ctx := t.Context()
	orders := newFakeOrderStore()
	o := placedOrder(t)
	require.NoError(t, o.Cancel())
	require.NoError(t, orders.Add(ctx, o))

	h := commands.NewVerifyTokenCommandHandler(fakeOrderUoWFactory{repo: orders})
	cmd, _ := commands.NewVerifyTokenCommand(o.Token())

	_, err := h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, order.ErrOrderCancelled)
}

func TestVerifyTokenCommandHandler_Handle_ConcurrentRedemption(t *testing.T) {
	ctx := t.Context()
	orders := newFakeOrderStore()
	o := placedOrder(t)
	require.NoError(t, orders.Add(ctx, o))

	h := commands.NewVerifyTokenCommandHandler(fakeOrderUoWFactory{repo: orders})

	const presentations = 25
	results := make(chan error, presentations)

	var wg sync.WaitGroup
	wg.Add(presentations)
	for i := 0; i < presentations; i++ {
		go func() {
			defer wg.Done()
			cmd, err := commands.NewVerifyTokenCommand(o.Token())
			if err != nil {
				results <- err
				return
			}
			_, err = h.Handle(ctx, cmd)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, rejections := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			assert.ErrorIs(t, err, order.ErrAlreadyRedeemed)
			rejections++
		}
	}

	// Exactly one presentation pays out no matter the interleaving.
	assert.Equal(t, 1, successes)
	assert.Equal(t, presentations-1, rejections)
}
