package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	SKU             string           `json:"sku"`
	Weight          string           `json:"weight,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	IsNew           bool             `json:"is_new"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// EffectivePrice returns the discounted price when one is set, else the list price.
func EffectivePrice(price decimal.Decimal, discounted *decimal.Decimal) decimal.Decimal {
	if discounted != nil {
		return *discounted
	}

	return price
}

func (p *Product) EffectivePrice() decimal.Decimal {
	return EffectivePrice(p.Price, p.DiscountedPrice)
}

// ProductSummary is the product view embedded in cart and order lines.
type ProductSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	SKU    string    `json:"sku"`
	Weight string    `json:"weight,omitempty"`
}
