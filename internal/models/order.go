package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusFailed     OrderStatus = "FAILED"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:        {OrderStatusProcessing},
	OrderStatusProcessing: {OrderStatusPaid, OrderStatusFailed},
	OrderStatusPaid:       {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusCompleted, OrderStatusCanceled},
}

// CanTransitionTo reports whether next is a legal single step forward from s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// IsFinal reports whether no further transition leaves s.
func (s OrderStatus) IsFinal() bool {
	return len(orderTransitions[s]) == 0
}

type DeliveryMethod string

const (
	DeliveryNovaPoshta DeliveryMethod = "NOVA_POSHTA"
	DeliveryCourier    DeliveryMethod = "COURIER"
	DeliveryPickup     DeliveryMethod = "PICKUP"
)

type PaymentMethod string

const (
	PaymentLiqpay         PaymentMethod = "LIQPAY"
	PaymentBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

type Order struct {
	ID                uuid.UUID       `json:"id"`
	CustomerID        *uuid.UUID      `json:"customer_id,omitempty"`
	CompanyName       string          `json:"company_name,omitempty"`
	ContactPerson     string          `json:"contact_person,omitempty"`
	FullName          string          `json:"full_name,omitempty"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Status            OrderStatus     `json:"status"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	DeliveryMethod    DeliveryMethod  `json:"delivery_method"`
	DeliveryCountryID *int64          `json:"delivery_country_id,omitempty"`
	DeliveryRegionID  *int64          `json:"delivery_region_id,omitempty"`
	DeliveryAddress   string          `json:"delivery_address,omitempty"`
	Items             []OrderItem     `json:"items"`
	Total             decimal.Decimal `json:"total"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// OrderItem carries the unit price captured when the order was placed.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// ComputeTotal sums quantity times snapshot price over the order lines.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero

	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

type CheckoutItem struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

type CheckoutRequest struct {
	CompanyName       string         `json:"company_name,omitempty" validate:"omitempty,min=3,max=255"`
	ContactPerson     string         `json:"contact_person,omitempty" validate:"omitempty,min=3,max=255"`
	FullName          string         `json:"full_name,omitempty" validate:"omitempty,min=3,max=255"`
	Email             string         `json:"email" validate:"required,email"`
	Phone             string         `json:"phone" validate:"required,ua_phone"`
	PaymentMethod     PaymentMethod  `json:"payment_method" validate:"required,oneof=LIQPAY BANK_TRANSFER CASH_ON_DELIVERY"`
	DeliveryMethod    DeliveryMethod `json:"delivery_method" validate:"required,oneof=NOVA_POSHTA COURIER PICKUP"`
	DeliveryCountryID *int64         `json:"delivery_country_id,omitempty"`
	DeliveryRegionID  *int64         `json:"delivery_region_id,omitempty"`
	DeliveryAddress   string         `json:"delivery_address,omitempty" validate:"omitempty,max=500"`
	Items             []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Size   int     `json:"size"`
}
