package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusNew        TransactionStatus = "NEW"
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusSuccessful TransactionStatus = "SUCCESSFUL"
	TransactionStatusFailed     TransactionStatus = "FAILED"
)

var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusNew:        {TransactionStatusProcessing},
	TransactionStatusProcessing: {TransactionStatusSuccessful, TransactionStatusFailed},
}

func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range transactionTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// OrderStatus is the order status mirrored alongside a transaction reaching s.
func (s TransactionStatus) OrderStatus() OrderStatus {
	switch s {
	case TransactionStatusProcessing:
		return OrderStatusProcessing
	case TransactionStatusSuccessful:
		return OrderStatusPaid
	case TransactionStatusFailed:
		return OrderStatusFailed
	default:
		return OrderStatusNew
	}
}

type PaymentTransaction struct {
	ID         uuid.UUID         `json:"id"`
	OrderID    uuid.UUID         `json:"order_id"`
	Amount     decimal.Decimal   `json:"amount"`
	Status     TransactionStatus `json:"status"`
	GatewayRef string            `json:"gateway_ref,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type TransactionListResponse struct {
	Transactions []PaymentTransaction `json:"transactions"`
	Total        int                  `json:"total"`
	Page         int                  `json:"page"`
	Size         int                  `json:"size"`
}

// ProgressionReport counts the records advanced by each step of one progression run.
type ProgressionReport struct {
	Completed           int `json:"completed"`
	Canceled            int `json:"canceled"`
	Shipped             int `json:"shipped"`
	PaymentsSucceeded   int `json:"payments_succeeded"`
	PaymentsFailed      int `json:"payments_failed"`
	PaymentsProcessing  int `json:"payments_processing"`
	TransactionsCreated int `json:"transactions_created"`
}

// GatewayWebhookResult describes what a gateway notification changed.
type GatewayWebhookResult struct {
	EventType     string            `json:"event_type"`
	TransactionID *uuid.UUID        `json:"transaction_id,omitempty"`
	Status        TransactionStatus `json:"status,omitempty"`
	Ignored       bool              `json:"ignored"`
}
