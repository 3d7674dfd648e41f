package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/google/uuid"
)

var (
	ErrProgressionInProgress = stdErrors.New("another progression run holds the lock")

	// ErrTransactionStateChanged aborts a run whose transaction moved while its order was being updated.
	ErrTransactionStateChanged = stdErrors.New("payment transaction changed status concurrently")
)

// OutcomeProvider decides how the simulated gateway and carrier resolve.
type OutcomeProvider interface {
	PaymentSucceeded(ctx context.Context, tx models.PaymentTransaction) bool
	DeliveryCompleted(ctx context.Context, orderID uuid.UUID) bool
}

// RandomOutcomes succeeds with probability SuccessRatio for both payments and deliveries.
type RandomOutcomes struct {
	SuccessRatio float64
}

func NewRandomOutcomes(successRatio float64) *RandomOutcomes {
	return &RandomOutcomes{SuccessRatio: successRatio}
}

func (o *RandomOutcomes) PaymentSucceeded(context.Context, models.PaymentTransaction) bool {
	return rand.Float64() < o.SuccessRatio
}

func (o *RandomOutcomes) DeliveryCompleted(context.Context, uuid.UUID) bool {
	return rand.Float64() < o.SuccessRatio
}

type ProgressionService interface {
	// Run advances every order and transaction by at most one step, all inside one transaction.
	Run(ctx context.Context) (*models.ProgressionReport, error)
}

type progressionService struct {
	orders     repository.OrderRepository
	payments   repository.PaymentRepository
	locks      repository.LockRepository
	transactor repository.Transactor
	outcomes   OutcomeProvider
	lockKey    int64
}

func NewProgressionService(orders repository.OrderRepository, payments repository.PaymentRepository, locks repository.LockRepository, transactor repository.Transactor, outcomes OutcomeProvider, lockKey int64) ProgressionService {
	return &progressionService{
		orders:     orders,
		payments:   payments,
		locks:      locks,
		transactor: transactor,
		outcomes:   outcomes,
		lockKey:    lockKey,
	}
}

func (s *progressionService) Run(ctx context.Context) (*models.ProgressionReport, error) {

	logger := middleware.LoggerFromContext(ctx)
	report := &models.ProgressionReport{}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		acquired, err := s.locks.TryAdvisoryLock(ctx, s.lockKey)
		if err != nil {
			return fmt.Errorf("failed to take progression lock: %w", err)
		}

		if !acquired {
			return ErrProgressionInProgress
		}

		// latest state first, so nothing moves twice in one run
		steps := []struct {
			name string
			run  func(ctx context.Context, report *models.ProgressionReport) error
		}{
			{"resolve deliveries", s.resolveDeliveries},
			{"ship paid orders", s.shipPaidOrders},
			{"settle payments", s.settlePayments},
			{"start payments", s.startPayments},
			{"open transactions", s.openTransactions},
		}

		for _, step := range steps {
			if err := step.run(ctx, report); err != nil {
				return fmt.Errorf("%s: %w", step.name, err)
			}
		}

		return nil
	})
	if err != nil {
		if stdErrors.Is(err, ErrProgressionInProgress) {
			logger.Warn("Progression skipped, lock held by another run")
			return nil, err
		}
		logger.Error("Progression run failed, changes rolled back", slog.Any("error", err))
		return nil, err
	}

	logger.Info("Progression run finished",
		slog.Int("completed", report.Completed),
		slog.Int("canceled", report.Canceled),
		slog.Int("shipped", report.Shipped),
		slog.Int("paymentsSucceeded", report.PaymentsSucceeded),
		slog.Int("paymentsFailed", report.PaymentsFailed),
		slog.Int("paymentsProcessing", report.PaymentsProcessing),
		slog.Int("transactionsCreated", report.TransactionsCreated),
	)

	return report, nil
}

// SHIPPED -> COMPLETED | CANCELED
func (s *progressionService) resolveDeliveries(ctx context.Context, report *models.ProgressionReport) error {

	ids, err := s.orders.ListIDsByStatus(ctx, models.OrderStatusShipped)
	if err != nil {
		return err
	}

	for _, id := range ids {
		next := models.OrderStatusCanceled
		if s.outcomes.DeliveryCompleted(ctx, id) {
			next = models.OrderStatusCompleted
		}

		moved, err := s.orders.UpdateStatus(ctx, id, models.OrderStatusShipped, next)
		if err != nil {
			return err
		}

		if !moved {
			continue
		}

		if next == models.OrderStatusCompleted {
			report.Completed++
		} else {
			report.Canceled++
		}
	}

	return nil
}

// PAID -> SHIPPED
func (s *progressionService) shipPaidOrders(ctx context.Context, report *models.ProgressionReport) error {

	ids, err := s.orders.ListIDsByStatus(ctx, models.OrderStatusPaid)
	if err != nil {
		return err
	}

	for _, id := range ids {
		moved, err := s.orders.UpdateStatus(ctx, id, models.OrderStatusPaid, models.OrderStatusShipped)
		if err != nil {
			return err
		}

		if moved {
			report.Shipped++
		}
	}

	return nil
}

// PROCESSING -> SUCCESSFUL (order PAID) | FAILED (order FAILED)
func (s *progressionService) settlePayments(ctx context.Context, report *models.ProgressionReport) error {

	txs, err := s.payments.ListByStatus(ctx, models.TransactionStatusProcessing)
	if err != nil {
		return err
	}

	for _, tx := range txs {
		next := models.TransactionStatusFailed
		if s.outcomes.PaymentSucceeded(ctx, tx) {
			next = models.TransactionStatusSuccessful
		}

		moved, err := advanceTransaction(ctx, s.orders, s.payments, tx, next, "")
		if err != nil {
			return err
		}

		if !moved {
			continue
		}

		if next == models.TransactionStatusSuccessful {
			report.PaymentsSucceeded++
		} else {
			report.PaymentsFailed++
		}
	}

	return nil
}

// NEW -> PROCESSING for both the transaction and its order
func (s *progressionService) startPayments(ctx context.Context, report *models.ProgressionReport) error {

	txs, err := s.payments.ListByStatus(ctx, models.TransactionStatusNew)
	if err != nil {
		return err
	}

	for _, tx := range txs {
		moved, err := advanceTransaction(ctx, s.orders, s.payments, tx, models.TransactionStatusProcessing, "")
		if err != nil {
			return err
		}

		if moved {
			report.PaymentsProcessing++
		}
	}

	return nil
}

// NEW orders without a transaction get one for the sum of their lines. The order itself stays NEW.
func (s *progressionService) openTransactions(ctx context.Context, report *models.ProgressionReport) error {

	ids, err := s.orders.ListNewWithoutTransaction(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		amount, err := s.orders.SumItems(ctx, id)
		if err != nil {
			return err
		}

		created, err := s.payments.CreateTransaction(ctx, &models.PaymentTransaction{
			ID:      uuid.New(),
			OrderID: id,
			Amount:  amount,
			Status:  models.TransactionStatusNew,
		})
		if err != nil {
			return err
		}

		if created {
			report.TransactionsCreated++
		}
	}

	return nil
}

// advanceTransaction moves tx to next and mirrors the change into its order. The order is updated
// first: if it already left the expected status the record is skipped without writing anything.
// Must run inside a transaction.
func advanceTransaction(ctx context.Context, orders repository.OrderRepository, payments repository.PaymentRepository, tx models.PaymentTransaction, next models.TransactionStatus, gatewayRef string) (bool, error) {

	if !tx.Status.CanTransitionTo(next) {
		return false, nil
	}

	moved, err := orders.UpdateStatus(ctx, tx.OrderID, tx.Status.OrderStatus(), next.OrderStatus())
	if err != nil {
		return false, err
	}

	if !moved {
		return false, nil
	}

	moved, err = payments.UpdateStatus(ctx, tx.ID, tx.Status, next, gatewayRef)
	if err != nil {
		return false, err
	}

	if !moved {
		return false, fmt.Errorf("transaction %s: %w", tx.ID, ErrTransactionStateChanged)
	}

	return true, nil
}
