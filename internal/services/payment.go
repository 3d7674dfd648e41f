package service

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/nuts-storefront/pkg/stripe"
	"github.com/google/uuid"
)

type PaymentService interface {
	ListTransactions(ctx context.Context, customerID uuid.UUID, page, size int) (*models.TransactionListResponse, error)
	HandleGatewayWebhook(ctx context.Context, payload []byte, signature string) (*models.GatewayWebhookResult, error)
}

type paymentService struct {
	repo         repository.PaymentRepository
	orderRepo    repository.OrderRepository
	transactor   repository.Transactor
	stripeClient stripe.Client
}

func NewPaymentService(repo repository.PaymentRepository, orderRepo repository.OrderRepository, transactor repository.Transactor, stripeClient stripe.Client) PaymentService {
	return &paymentService{repo: repo, orderRepo: orderRepo, transactor: transactor, stripeClient: stripeClient}
}

func (s *paymentService) ListTransactions(ctx context.Context, customerID uuid.UUID, page, size int) (*models.TransactionListResponse, error) {

	page, size = models.NormalizePage(page, size)

	txs, total, err := s.repo.ListTransactionsByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch transactions").WithError(err)
	}

	return &models.TransactionListResponse{
		Transactions: txs,
		Total:        total,
		Page:         page,
		Size:         size,
	}, nil
}

// HandleGatewayWebhook settles a PROCESSING transaction from a verified gateway notification.
// Redelivered or unrelated events are acknowledged and ignored.
func (s *paymentService) HandleGatewayWebhook(ctx context.Context, payload []byte, signature string) (*models.GatewayWebhookResult, error) {

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return nil, errors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	result := &models.GatewayWebhookResult{EventType: string(event.Type), Ignored: true}

	var next models.TransactionStatus

	switch string(event.Type) {
	case stripe.EventPaymentSucceeded:
		next = models.TransactionStatusSuccessful
	case stripe.EventPaymentFailed:
		next = models.TransactionStatusFailed
	default:
		return result, nil
	}

	intentID, rawID, err := stripe.PaymentIntentRef(event)
	if err != nil {
		return nil, errors.ThirdPartyError("Malformed payment intent in webhook").WithError(err)
	}

	txID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.BadRequestError("Invalid transaction id in webhook").WithError(err)
	}

	result.TransactionID = &txID

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		tx, err := s.repo.GetTransactionByID(ctx, txID)
		if err != nil {
			return err
		}

		if tx.Status != models.TransactionStatusProcessing {
			return nil
		}

		moved, err := advanceTransaction(ctx, s.orderRepo, s.repo, *tx, next, intentID)
		if err != nil {
			return err
		}

		if moved {
			result.Ignored = false
			result.Status = next
		}

		return nil
	})
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Payment transaction not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to settle payment").WithError(err)
	}

	return result, nil
}
