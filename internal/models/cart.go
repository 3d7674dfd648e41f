package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidCartOwner = errors.New("cart owner must be either a customer or a session")

// CartOwner identifies whose cart is addressed: exactly one of CustomerID or SessionKey is set.
type CartOwner struct {
	CustomerID uuid.UUID
	SessionKey string
}

func CustomerOwner(customerID uuid.UUID) CartOwner {
	return CartOwner{CustomerID: customerID}
}

func SessionOwner(sessionKey string) CartOwner {
	return CartOwner{SessionKey: sessionKey}
}

func (o CartOwner) IsCustomer() bool {
	return o.CustomerID != uuid.Nil
}

func (o CartOwner) Validate() error {
	hasCustomer := o.CustomerID != uuid.Nil
	hasSession := o.SessionKey != ""

	if hasCustomer == hasSession {
		return ErrInvalidCartOwner
	}

	return nil
}

type Cart struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID *uuid.UUID      `json:"customer_id,omitempty"`
	SessionKey *string         `json:"-"`
	IsActive   bool            `json:"is_active"`
	Items      []CartItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CartItem struct {
	ID        uuid.UUID       `json:"id"`
	CartID    uuid.UUID       `json:"cart_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ItemTotal decimal.Decimal `json:"item_total"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// ComputeTotals fills per-line totals and the cart aggregates from the loaded items.
func (c *Cart) ComputeTotals() {
	total := decimal.Zero
	count := 0

	for i := range c.Items {
		item := &c.Items[i]
		item.ItemTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.ItemTotal)
		count += item.Quantity
	}

	c.Total = total
	c.ItemCount = count
}

type CartAction string

const (
	CartActionIncrement CartAction = "plus"
	CartActionDecrement CartAction = "minus"
	CartActionRemove    CartAction = "remove"
)

var ErrUnknownCartAction = errors.New("unknown cart action")

func ParseCartAction(s string) (CartAction, error) {
	switch a := CartAction(s); a {
	case CartActionIncrement, CartActionDecrement, CartActionRemove:
		return a, nil
	default:
		return "", ErrUnknownCartAction
	}
}

type AddItemRequest struct {
	Quantity int `json:"quantity" validate:"omitempty,min=1"`
}

type CartCounterResponse struct {
	ItemCount int `json:"item_count"`
}
