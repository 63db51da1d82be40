package http

import (
	"fmt"
	"strconv"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/model/session"
)

// inputRequest is the wire form of one conversation input. Type selects the
// variant; the remaining fields are read per type. Quantity arrives as a
// string because conversational clients forward raw user text.
type inputRequest struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id,omitempty"`
	Size      string `json:"size,omitempty"`
	Level     string `json:"level,omitempty"`
	AddOn     string `json:"add_on,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
	To        string `json:"to,omitempty"`
}

func (r inputRequest) toInput() (session.Input, error) {
	switch r.Type {
	case "select_product":
		productID, err := kernel.UUIDFromString(r.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		return session.SelectProduct{ProductID: productID}, nil

	case "choose_size":
		if r.Size == "" {
			return nil, fmt.Errorf("size is required")
		}
		return session.ChooseSize{Name: r.Size}, nil

	case "choose_level":
		level, err := session.LevelFromString(r.Level)
		if err != nil {
			return nil, err
		}
		return session.ChooseLevel{Level: level}, nil

	case "toggle_add_on":
		if r.AddOn == "" {
			return nil, fmt.Errorf("add_on is required")
		}
		return session.ToggleAddOn{Name: r.AddOn}, nil

	case "set_quantity":
		value, err := strconv.Atoi(r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("quantity %q is not a number", r.Quantity)
		}
		return session.SetQuantity{Value: value}, nil

	case "navigate":
		to, ok := session.DestinationFromString(r.To)
		if !ok {
			return nil, fmt.Errorf("unknown destination %q", r.To)
		}
		return session.Navigate{To: to}, nil

	default:
		return nil, fmt.Errorf("unknown input type %q", r.Type)
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type promptOptionResponse struct {
	Label     string `json:"label"`
	ProductID string `json:"product_id,omitempty"`
	Selected  bool   `json:"selected,omitempty"`
}

type promptResponse struct {
	Kind    string                 `json:"kind"`
	Options []promptOptionResponse `json:"options"`
	Notice  string                 `json:"notice,omitempty"`
}

type sessionStateResponse struct {
	Identity string         `json:"identity"`
	State    string         `json:"state"`
	Prompt   promptResponse `json:"prompt"`
	Error    string         `json:"error,omitempty"`
}

type placedOrderResponse struct {
	OrderID  string    `json:"order_id"`
	Total    float64   `json:"total"`
	Token    string    `json:"token"`
	PickupAt time.Time `json:"pickup_at"`
}

type orderItemResponse struct {
	ProductName string   `json:"product_name"`
	Size        string   `json:"size"`
	SugarLevel  string   `json:"sugar_level"`
	IceLevel    string   `json:"ice_level,omitempty"`
	AddOns      []string `json:"add_ons,omitempty"`
	Quantity    int      `json:"quantity"`
	Subtotal    float64  `json:"subtotal"`
}

// verifiedOrderSummary is the seller display shown after a successful
// redemption: who the order belongs to and exactly what to prepare.
type verifiedOrderSummary struct {
	OrderID   string              `json:"order_id"`
	Customer  string              `json:"customer"`
	Status    string              `json:"status"`
	Items     []orderItemResponse `json:"items"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	PickupAt  time.Time           `json:"pickup_at"`
}

func verifiedOrderResponse(o *order.Order) verifiedOrderSummary {
	items := make([]orderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		addOns := make([]string, len(item.AddOns))
		for j, a := range item.AddOns {
			addOns[j] = a.Name
		}
		items[i] = orderItemResponse{
			ProductName: item.ProductName,
			Size:        item.Size,
			SugarLevel:  item.SugarLevel,
			IceLevel:    item.IceLevel,
			AddOns:      addOns,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		}
	}

	return verifiedOrderSummary{
		OrderID:   o.ID().String(),
		Customer:  o.Customer(),
		Status:    o.Status().String(),
		Items:     items,
		Total:     o.Total(),
		CreatedAt: o.CreatedAt(),
		PickupAt:  o.PickupAt(),
	}
}

type awaitingPickupOrderResponse struct {
	OrderID   string    `json:"order_id"`
	Customer  string    `json:"customer"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	PickupAt  time.Time `json:"pickup_at"`
}

type customerOrderResponse struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	PickupAt  time.Time `json:"pickup_at"`
}
