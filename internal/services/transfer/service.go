// Package transfer moves balance between two wallets. Every gate runs in a
// fixed order (amount, PIN, recipient, funds) and the debit, the credit and
// the two ledger entries commit as one database transaction, so a crash can
// never destroy or duplicate money.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"paygo/internal/models"
	"paygo/internal/repositories"
	"paygo/internal/services/notification"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type service struct {
	ledger   repositories.LedgerRepository
	users    repositories.UserRepository
	pins     PinVerifier
	cache    WalletCache
	notifier Notifier
}

func NewService(
	ledger repositories.LedgerRepository,
	users repositories.UserRepository,
	pins PinVerifier,
	cache WalletCache,
	notifier Notifier,
) Service {
	return &service{
		ledger:   ledger,
		users:    users,
		pins:     pins,
		cache:    cache,
		notifier: notifier,
	}
}

func (s *service) Transfer(ctx context.Context, senderID uint, recipientEmail string, amount float64, pin string) (*Result, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// PIN authorization before anything else touches money. The verifier
	// distinguishes "no PIN configured" from "wrong PIN".
	if err := s.pins.Verify(senderID, pin); err != nil {
		return nil, err
	}

	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return nil, err
	}
	if sender.IsSuspended {
		return nil, ErrAccountSuspended
	}

	recipient, err := s.users.GetByEmail(recipientEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.ID == sender.ID {
		return nil, ErrSelfTransfer
	}

	var (
		newBalance float64
		debitTx    *models.Transaction
		creditTx   *models.Transaction
	)
	err = s.ledger.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		// Conditional atomic decrement: the sufficiency check and the
		// debit are one statement, so concurrent transfers from the same
		// sender cannot both pass a stale balance check.
		var err error
		newBalance, err = tx.DebitIfSufficient(sender.ID, amount)
		if err != nil {
			if errors.Is(err, repositories.ErrInsufficientBalance) {
				return ErrInsufficientBalance
			}
			return err
		}

		// Only the transfer engine creates a wallet lazily; accounts made
		// before eager wallet creation may still lack one.
		if _, err := tx.GetWalletByUserID(recipient.ID); err != nil {
			if !errors.Is(err, repositories.ErrWalletNotFound) {
				return err
			}
			if err := tx.CreateWallet(&models.Wallet{UserID: recipient.ID, Currency: "NGN"}); err != nil {
				return err
			}
		}

		if _, err := tx.CreditBalance(recipient.ID, amount); err != nil {
			return err
		}

		// Transfers never touch the gateway, so they mint their own
		// references to keep every ledger row individually traceable.
		debitRef := "TRF-" + uuid.NewString()
		creditRef := "TRF-" + uuid.NewString()

		debitTx = &models.Transaction{
			UserID:            sender.ID,
			Type:              models.TransactionTypeDebit,
			Amount:            amount,
			Status:            models.TransactionStatusSuccessful,
			Reference:         &debitRef,
			Description:       fmt.Sprintf("Transfer to %s", recipient.Email),
			CounterpartyID:    &recipient.ID,
			CounterpartyName:  recipient.FullName(),
			CounterpartyEmail: recipient.Email,
		}
		if err := tx.CreateTransaction(debitTx); err != nil {
			return err
		}

		creditTx = &models.Transaction{
			UserID:            recipient.ID,
			Type:              models.TransactionTypeCredit,
			Amount:            amount,
			Status:            models.TransactionStatusSuccessful,
			Reference:         &creditRef,
			Description:       fmt.Sprintf("Received from %s", sender.Email),
			CounterpartyID:    &sender.ID,
			CounterpartyName:  sender.FullName(),
			CounterpartyEmail: sender.Email,
		}
		return tx.CreateTransaction(creditTx)
	})
	if err != nil {
		return nil, err
	}

	for _, userID := range []uint{sender.ID, recipient.ID} {
		if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("wallet cache invalidation failed")
		}
	}

	logrus.WithFields(logrus.Fields{
		"sender_id":    sender.ID,
		"recipient_id": recipient.ID,
		"amount":       amount,
	}).Info("transfer completed")

	s.notifier.Dispatch(notification.TransferCompleted{
		Sender:     sender,
		Recipient:  recipient,
		Amount:     amount,
		DebitTxID:  debitTx.ID,
		CreditTxID: creditTx.ID,
	})

	return &Result{NewBalance: newBalance}, nil
}
