package repositories

import (
	"errors"
	"time"

	"paygo/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateReference  = errors.New("reference already recorded")
)

// TransactionFilter narrows a user's transaction history query.
type TransactionFilter struct {
	Type      string // "credit", "debit" or empty for both
	StartDate *time.Time
	EndDate   *time.Time
	SortAsc   bool
	Limit     int
	Offset    int
}

// LedgerRepository is the persistence surface for wallets and transactions.
// Every balance mutation is an atomic conditional SQL update, and multi-write
// units (funding settlement, transfers) run inside ExecuteInTransaction so a
// crash can never leave money half-moved.
type LedgerRepository interface {
	// Wallet operations
	CreateWallet(wallet *models.Wallet) error
	GetWalletByUserID(userID uint) (*models.Wallet, error)
	// CreditBalance adds amount to the wallet and returns the new balance.
	CreditBalance(userID uint, amount float64) (float64, error)
	// DebitIfSufficient subtracts amount only when balance >= amount,
	// returning the new balance or ErrInsufficientBalance. The check and
	// the write are a single statement, so concurrent debits cannot
	// interleave between them.
	DebitIfSufficient(userID uint, amount float64) (float64, error)

	// Transaction operations
	CreateTransaction(tx *models.Transaction) error
	GetTransactionByReference(reference string) (*models.Transaction, error)
	// MarkTransactionSuccessful flips reference from pending to successful.
	// It reports false when no pending row matched, which callers treat as
	// "already processed". This conditional update is the sole idempotency
	// arbiter for funding settlement.
	MarkTransactionSuccessful(reference string) (bool, error)
	// HasPendingFunding reports whether the user has an unresolved pending
	// funding transaction.
	HasPendingFunding(userID uint) (bool, error)

	// History queries
	ListTransactions(userID uint, filter TransactionFilter) ([]models.Transaction, int64, error)
	GetTransactionForUser(id, userID uint) (*models.Transaction, error)

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction; any error rolls back every write.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
