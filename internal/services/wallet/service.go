// Package wallet is the read side of the ledger: balance lookups and
// transaction history. Balance reads for display go through the cache;
// anything that gates a financial decision reads the database directly.
package wallet

import (
	"context"

	"paygo/internal/models"
	"paygo/internal/repositories"
	"paygo/internal/repositories/cache"

	"github.com/sirupsen/logrus"
)

type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	ListTransactions(userID uint, filter repositories.TransactionFilter) ([]models.Transaction, int64, error)
	GetTransaction(id, userID uint) (*models.Transaction, error)
}

type service struct {
	ledger repositories.LedgerRepository
	cache  *cache.CacheService
}

func NewService(ledger repositories.LedgerRepository, cacheService *cache.CacheService) Service {
	return &service{ledger: ledger, cache: cacheService}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if cached, ok := s.cache.GetWallet(ctx, userID); ok {
		return cached, nil
	}

	wallet, err := s.ledger.GetWalletByUserID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.CacheWallet(ctx, wallet); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Debug("wallet cache write failed")
	}
	return wallet, nil
}

func (s *service) ListTransactions(userID uint, filter repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	return s.ledger.ListTransactions(userID, filter)
}

func (s *service) GetTransaction(id, userID uint) (*models.Transaction, error) {
	return s.ledger.GetTransactionForUser(id, userID)
}
