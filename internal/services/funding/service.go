// Package funding orchestrates wallet funding through the payment gateway.
// Two entry paths exist, the gateway's webhook push and the client-driven
// verification pull, and both converge on the same idempotent settlement:
// a conditional pending -> successful status flip plus the wallet credit,
// applied as one database transaction.
package funding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"paygo/internal/models"
	"paygo/internal/repositories"
	"paygo/internal/services/notification"
	"paygo/internal/services/paystack"

	"github.com/sirupsen/logrus"
)

type service struct {
	ledger   repositories.LedgerRepository
	users    repositories.UserRepository
	gateway  Gateway
	cache    WalletCache
	notifier Notifier
}

func NewService(
	ledger repositories.LedgerRepository,
	users repositories.UserRepository,
	gateway Gateway,
	cache WalletCache,
	notifier Notifier,
) Service {
	return &service{
		ledger:   ledger,
		users:    users,
		gateway:  gateway,
		cache:    cache,
		notifier: notifier,
	}
}

func (s *service) InitFunding(ctx context.Context, userID uint, amount float64) (*InitFundingResult, error) {
	if amount < MinFundingAmount {
		return nil, ErrAmountTooLow
	}

	// One unresolved intent at a time, otherwise abandoned gateway charges
	// pile up and later settle against a stale expectation.
	pending, err := s.ledger.HasPendingFunding(userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrPendingFundingExists
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	amountKobo := int64(math.Round(amount * KoboPerNaira))
	init, err := s.gateway.Initialize(ctx, user.Email, amountKobo)
	if err != nil {
		// Gateway failed: no transaction record is created, the intent
		// simply never existed.
		return nil, err
	}

	reference := init.Reference
	tx := &models.Transaction{
		UserID:      userID,
		Type:        models.TransactionTypeCredit,
		Amount:      amount,
		Status:      models.TransactionStatusPending,
		Reference:   &reference,
		Description: "Wallet funding via Paystack",
	}
	if err := s.ledger.CreateTransaction(tx); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"reference": reference,
		"amount":    amount,
	}).Info("funding initialized")

	return &InitFundingResult{
		AuthorizationURL: init.AuthorizationURL,
		Reference:        reference,
		Amount:           amount,
	}, nil
}

func (s *service) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*SettleResult, error) {
	if !s.gateway.ValidateSignature(rawBody, signature) {
		return nil, ErrInvalidSignature
	}

	var event paystack.Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if event.Event != paystack.EventChargeSuccess {
		logrus.WithField("event", event.Event).Debug("ignoring webhook event")
		return nil, nil
	}

	return s.settle(ctx, event.Data.Reference, event.Data.Amount)
}

func (s *service) VerifyFunding(ctx context.Context, userID uint, reference string) (*SettleResult, error) {
	tx, err := s.ledger.GetTransactionByReference(reference)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrFundingNotFound
		}
		return nil, err
	}
	if tx.UserID != userID {
		return nil, ErrFundingNotFound
	}

	verified, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	if verified.Status != "success" {
		return nil, ErrPaymentNotSuccessful
	}

	return s.settle(ctx, reference, verified.AmountKobo)
}

// settle applies the idempotent core: the status-gated update is the sole
// arbiter, so of any number of concurrent webhook deliveries and manual
// verifications exactly one credits the wallet and the rest observe a
// duplicate. Status flip and balance credit commit together or not at all.
func (s *service) settle(ctx context.Context, reference string, amountKobo int64) (*SettleResult, error) {
	pending, err := s.ledger.GetTransactionByReference(reference)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrFundingNotFound
		}
		return nil, err
	}

	amount := float64(amountKobo) / KoboPerNaira
	if amountKobo == 0 {
		amount = pending.Amount
	}

	var (
		credited   bool
		newBalance float64
	)
	err = s.ledger.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		matched, err := tx.MarkTransactionSuccessful(reference)
		if err != nil {
			return err
		}
		if !matched {
			// Already processed; benign no-op.
			return nil
		}
		credited = true
		newBalance, err = tx.CreditBalance(pending.UserID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &SettleResult{Reference: reference, Amount: amount, Credited: credited}
	if !credited {
		logrus.WithField("reference", reference).Info("funding already settled, skipping")
		return result, nil
	}
	result.NewBalance = newBalance

	if err := s.cache.InvalidateWallet(ctx, pending.UserID); err != nil {
		logrus.WithError(err).WithField("user_id", pending.UserID).Warn("wallet cache invalidation failed")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   pending.UserID,
		"reference": reference,
		"amount":    amount,
	}).Info("wallet funded")

	if user, err := s.users.GetByID(pending.UserID); err == nil {
		s.notifier.Dispatch(notification.WalletFunded{
			User:          user,
			Amount:        amount,
			Reference:     reference,
			TransactionID: pending.ID,
		})
	} else {
		logrus.WithError(err).WithField("user_id", pending.UserID).Warn("skipping funding notification")
	}

	return result, nil
}
