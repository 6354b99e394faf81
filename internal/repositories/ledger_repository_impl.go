package repositories

import (
	"errors"
	"fmt"

	"paygo/internal/models"

	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateWallet(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetWalletByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) CreditBalance(userID uint, amount float64) (float64, error) {
	var balance float64
	result := r.db.Raw(
		`UPDATE wallets SET balance = balance + ?, updated_at = NOW() WHERE user_id = ? RETURNING balance`,
		amount, userID,
	).Scan(&balance)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrWalletNotFound
	}
	return balance, nil
}

func (r *ledgerRepository) DebitIfSufficient(userID uint, amount float64) (float64, error) {
	var balance float64
	result := r.db.Raw(
		`UPDATE wallets SET balance = balance - ?, updated_at = NOW()
		 WHERE user_id = ? AND balance >= ? RETURNING balance`,
		amount, userID, amount,
	).Scan(&balance)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrInsufficientBalance
	}
	return balance, nil
}

func (r *ledgerRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetTransactionByReference(reference string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("reference = ?", reference).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) MarkTransactionSuccessful(reference string) (bool, error) {
	result := r.db.Model(&models.Transaction{}).
		Where("reference = ? AND status = ?", reference, models.TransactionStatusPending).
		Update("status", models.TransactionStatusSuccessful)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update transaction status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ledgerRepository) HasPendingFunding(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND status = ? AND reference IS NOT NULL",
			userID, models.TransactionTypeCredit, models.TransactionStatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count pending fundings: %w", err)
	}
	return count > 0, nil
}

func (r *ledgerRepository) ListTransactions(userID uint, filter TransactionFilter) ([]models.Transaction, int64, error) {
	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if filter.Type == models.TransactionTypeCredit || filter.Type == models.TransactionTypeDebit {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	order := "created_at DESC"
	if filter.SortAsc {
		order = "created_at ASC"
	}

	var transactions []models.Transaction
	err := query.Order(order).Limit(filter.Limit).Offset(filter.Offset).Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, total, nil
}

func (r *ledgerRepository) GetTransactionForUser(id, userID uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
