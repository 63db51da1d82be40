package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).
		Select("customer", "items", "total", "status", "token", "redeemed", "created_at", "pickup_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByToken retrieves the order carrying the given pickup token.
func (r *GormOrderRepository) GetByToken(ctx context.Context, token string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrTokenNotFound
		}
		return nil, err
	}

	return toDomain(dto)
}

// RedeemByToken completes the order carrying the token with a single
// conditional UPDATE, so two counters presenting the same token cannot both
// succeed: the row moves to redeemed exactly once and the loser's update
// matches zero rows. A zero-row result is then classified by re-reading the
// row in the same transaction.
func (r *GormOrderRepository) RedeemByToken(ctx context.Context, token string) (*order.Order, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("token = ? AND redeemed = false AND status = ?", token, int(order.AwaitingPickup)).
		Updates(map[string]any{
			"redeemed": true,
			"status":   int(order.Completed),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.classifyRedeemFailure(ctx, token)
	}

	completed, err := r.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(completed.ID(), completed)
	return completed, nil
}

// classifyRedeemFailure explains why the conditional update matched nothing.
// Cancellation wins over the redeemed flag so a cancelled order's token is
// always reported as cancelled.
func (r *GormOrderRepository) classifyRedeemFailure(ctx context.Context, token string) error {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.ErrTokenNotFound
		}
		return err
	}

	switch {
	case order.Status(dto.Status) == order.Cancelled:
		return order.ErrOrderCancelled
	case dto.Redeemed:
		return order.ErrAlreadyRedeemed
	default:
		return order.NewInvalidTransitionError(order.Status(dto.Status), "complete")
	}
}
