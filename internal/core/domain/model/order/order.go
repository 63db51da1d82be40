package order

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrTokenNotFound is returned when a presented pickup token matches no
	// order.
	ErrTokenNotFound = errors.New("pickup token not found")

	// ErrAlreadyRedeemed is returned when a presented pickup token has already
	// been used to complete its order.
	ErrAlreadyRedeemed = errors.New("pickup token already redeemed")

	// ErrOrderCancelled is returned when a presented pickup token belongs to a
	// cancelled order.
	ErrOrderCancelled = errors.New("order is cancelled")
)

// ExtraCupDelay is added to the pickup estimate for every cup beyond the
// first.
const ExtraCupDelay = 2 * time.Minute

// pickupTokenBytes is the entropy of a pickup token. The hex form is twice
// this long.
const pickupTokenBytes = 32

// Order is the aggregate root for a placed drink order.
//
// An order is priced exactly once, at construction, from the line items built
// out of a finalized conversation. Its pickup token is minted at the same
// moment and never changes. The redeemed flag flips to true only together
// with the transition to Completed, so a token can pay out at most once.
type Order struct {
	id       kernel.UUID
	customer string
	items    []Item
	total    float64
	status   Status
	token    string
	redeemed bool

	createdAt time.Time
	pickupAt  time.Time

	isConstructed bool
}

// NewOrder creates an order from priced line items. The pickup token is
// minted here and the pickup estimate is computed from the items'
// preparation times: the slowest item plus ExtraCupDelay per additional cup.
//
// The order starts in Created status; callers place it with AwaitPickup.
func NewOrder(id kernel.UUID, customer string, items []Item, total float64, now time.Time) (*Order, error) {
	order := &Order{
		status:        Created,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomer(customer),
		order.setItems(items),
		order.setTotal(total),
	); err != nil {
		return nil, err
	}

	token, err := newPickupToken()
	if err != nil {
		return nil, fmt.Errorf("mint pickup token: %w", err)
	}
	order.token = token
	order.pickupAt = now.Add(pickupDelay(order.items))

	return order, nil
}

// RestoreOrder reconstructs an order from persistence without re-minting the
// token or re-pricing the items.
func RestoreOrder(
	id kernel.UUID,
	customer string,
	items []Item,
	total float64,
	status Status,
	token string,
	redeemed bool,
	createdAt time.Time,
	pickupAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		customer:      customer,
		items:         items,
		total:         total,
		status:        status,
		token:         token,
		redeemed:      redeemed,
		createdAt:     createdAt,
		pickupAt:      pickupAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the identity that placed the order.
func (o *Order) Customer() string {
	return o.customer
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total, rounded to cents.
func (o *Order) Total() float64 {
	return o.total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Token returns the single-use pickup token.
func (o *Order) Token() string {
	return o.token
}

// IsRedeemed reports whether the pickup token has been used.
func (o *Order) IsRedeemed() bool {
	return o.redeemed
}

// CreatedAt returns the time the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PickupAt returns the estimated ready-for-pickup time.
func (o *Order) PickupAt() time.Time {
	return o.pickupAt
}

// AwaitPickup hands the order to the counter, making its token redeemable.
func (o *Order) AwaitPickup() error {
	newStatus, err := o.status.AwaitPickup()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete redeems the pickup token and finishes the order. The redeemed
// flag and the Completed status change together.
//
// Complete enforces single use at the aggregate level; under concurrent
// redemption the repository's conditional update is the arbiter.
func (o *Order) Complete() error {
	if o.status == Cancelled {
		return ErrOrderCancelled
	}
	if o.redeemed {
		return ErrAlreadyRedeemed
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.redeemed = true
	return nil
}

// Cancel withdraws the order and invalidates its pickup token. Completed
// orders cannot be cancelled.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total", fmt.Errorf("%f is negative", total))
	}
	o.total = total
	return nil
}

// newPickupToken mints a cryptographically random token. Tokens are compared
// for exact equality; there is no structure to parse.
func newPickupToken() (string, error) {
	buf := make([]byte, pickupTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// pickupDelay estimates preparation as the slowest item plus ExtraCupDelay
// for every cup beyond the first.
func pickupDelay(items []Item) time.Duration {
	var longest time.Duration
	cups := 0
	for _, item := range items {
		if item.Preparation > longest {
			longest = item.Preparation
		}
		cups += item.Quantity
	}
	if cups > 1 {
		longest += time.Duration(cups-1) * ExtraCupDelay
	}
	return longest
}
