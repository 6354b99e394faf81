package transfer

import (
	"context"
	"testing"
	"time"

	"paygo/internal/models"
	"paygo/internal/repositories"
	"paygo/internal/services/notification"
	"paygo/internal/services/pin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) CreateWallet(w *models.Wallet) error {
	return m.Called(w).Error(0)
}

func (m *MockLedger) GetWalletByUserID(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if w, ok := args.Get(0).(*models.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) CreditBalance(userID uint, amount float64) (float64, error) {
	args := m.Called(userID, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockLedger) DebitIfSufficient(userID uint, amount float64) (float64, error) {
	args := m.Called(userID, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockLedger) CreateTransaction(tx *models.Transaction) error {
	return m.Called(tx).Error(0)
}

func (m *MockLedger) GetTransactionByReference(reference string) (*models.Transaction, error) {
	args := m.Called(reference)
	if tx, ok := args.Get(0).(*models.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) MarkTransactionSuccessful(reference string) (bool, error) {
	args := m.Called(reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) HasPendingFunding(userID uint) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) ListTransactions(userID uint, filter repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	args := m.Called(userID, filter)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedger) GetTransactionForUser(id, userID uint) (*models.Transaction, error) {
	args := m.Called(id, userID)
	if tx, ok := args.Get(0).(*models.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	if err := m.Called(fn).Error(0); err != nil {
		return err
	}
	return fn(m)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) CreateWithWallet(u *models.User) error { return m.Called(u).Error(0) }

func (m *MockUsers) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Update(u *models.User) error { return m.Called(u).Error(0) }

func (m *MockUsers) IncrementTokenVersion(userID uint) error { return m.Called(userID).Error(0) }

func (m *MockUsers) SavePinHash(userID uint, hash string) error {
	return m.Called(userID, hash).Error(0)
}

func (m *MockUsers) UpdatePinAttempts(userID uint, attempts int, lockedUntil *time.Time) error {
	return m.Called(userID, attempts, lockedUntil).Error(0)
}

func (m *MockUsers) List(limit, offset int) ([]models.User, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUsers) SetSuspended(userID uint, suspended bool) error {
	return m.Called(userID, suspended).Error(0)
}

func (m *MockUsers) Delete(userID uint) error { return m.Called(userID).Error(0) }

type MockPins struct {
	mock.Mock
}

func (m *MockPins) Verify(userID uint, candidate string) error {
	return m.Called(userID, candidate).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateWallet(ctx context.Context, userID uint) error {
	return m.Called(userID).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(e notification.Event) { m.Called(e) }

func newTestService() (*MockLedger, *MockUsers, *MockPins, *MockCache, *MockNotifier, Service) {
	ledger := new(MockLedger)
	users := new(MockUsers)
	pins := new(MockPins)
	cache := new(MockCache)
	notifier := new(MockNotifier)
	svc := NewService(ledger, users, pins, cache, notifier)
	return ledger, users, pins, cache, notifier, svc
}

func testUsers() (*models.User, *models.User) {
	sender := &models.User{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"}
	sender.ID = 1
	recipient := &models.User{FirstName: "Bola", LastName: "Eze", Email: "bola@example.com"}
	recipient.ID = 2
	return sender, recipient
}

func TestTransfer_Gates(t *testing.T) {
	sender, recipient := testUsers()

	t.Run("zero or negative amount", func(t *testing.T) {
		_, _, _, _, _, svc := newTestService()

		_, err := svc.Transfer(context.Background(), 1, "bola@example.com", 0, "1234")
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.Transfer(context.Background(), 1, "bola@example.com", -50, "1234")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("pin not set surfaces before any lookup", func(t *testing.T) {
		ledger, users, pins, _, _, svc := newTestService()
		pins.On("Verify", uint(1), "1234").Return(pin.ErrPinNotSet)

		_, err := svc.Transfer(context.Background(), 1, "bola@example.com", 100, "1234")
		assert.ErrorIs(t, err, pin.ErrPinNotSet)
		users.AssertNotCalled(t, "GetByEmail", mock.Anything)
		ledger.AssertNotCalled(t, "ExecuteInTransaction", mock.Anything)
	})

	t.Run("incorrect pin blocks the transfer", func(t *testing.T) {
		ledger, _, pins, _, _, svc := newTestService()
		pins.On("Verify", uint(1), "9999").Return(pin.ErrIncorrectPin)

		_, err := svc.Transfer(context.Background(), 1, "bola@example.com", 100, "9999")
		assert.ErrorIs(t, err, pin.ErrIncorrectPin)
		ledger.AssertNotCalled(t, "DebitIfSufficient", mock.Anything, mock.Anything)
	})

	t.Run("suspended sender", func(t *testing.T) {
		_, users, pins, _, _, svc := newTestService()
		suspended := *sender
		suspended.IsSuspended = true
		pins.On("Verify", uint(1), "1234").Return(nil)
		users.On("GetByID", uint(1)).Return(&suspended, nil)

		_, err := svc.Transfer(context.Background(), 1, "bola@example.com", 100, "1234")
		assert.ErrorIs(t, err, ErrAccountSuspended)
	})

	t.Run("recipient not found", func(t *testing.T) {
		_, users, pins, _, _, svc := newTestService()
		pins.On("Verify", uint(1), "1234").Return(nil)
		users.On("GetByID", uint(1)).Return(sender, nil)
		users.On("GetByEmail", "ghost@example.com").Return(nil, repositories.ErrUserNotFound)

		_, err := svc.Transfer(context.Background(), 1, "ghost@example.com", 100, "1234")
		assert.ErrorIs(t, err, ErrRecipientNotFound)
	})

	t.Run("self transfer", func(t *testing.T) {
		_, users, pins, _, _, svc := newTestService()
		pins.On("Verify", uint(1), "1234").Return(nil)
		users.On("GetByID", uint(1)).Return(sender, nil)
		users.On("GetByEmail", "ada@example.com").Return(sender, nil)

		_, err := svc.Transfer(context.Background(), 1, "ada@example.com", 100, "1234")
		assert.ErrorIs(t, err, ErrSelfTransfer)
	})

	t.Run("insufficient balance rolls back without partial state", func(t *testing.T) {
		ledger, users, pins, cache, notifier, svc := newTestService()
		pins.On("Verify", uint(1), "1234").Return(nil)
		users.On("GetByID", uint(1)).Return(sender, nil)
		users.On("GetByEmail", "bola@example.com").Return(recipient, nil)
		ledger.On("ExecuteInTransaction", mock.Anything).Return(nil)
		ledger.On("DebitIfSufficient", uint(1), 5000.0).Return(0.0, repositories.ErrInsufficientBalance)

		_, err := svc.Transfer(context.Background(), 1, "bola@example.com", 5000, "1234")
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		ledger.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything)
		ledger.AssertNotCalled(t, "CreateTransaction", mock.Anything)
		cache.AssertNotCalled(t, "InvalidateWallet", mock.Anything)
		notifier.AssertNotCalled(t, "Dispatch", mock.Anything)
	})
}

func TestTransfer_Success(t *testing.T) {
	sender, recipient := testUsers()

	ledger, users, pins, cache, notifier, svc := newTestService()
	pins.On("Verify", uint(1), "1234").Return(nil)
	users.On("GetByID", uint(1)).Return(sender, nil)
	users.On("GetByEmail", "bola@example.com").Return(recipient, nil)
	ledger.On("ExecuteInTransaction", mock.Anything).Return(nil)
	// 5000 balance minus 2000 transfer leaves 3000.
	ledger.On("DebitIfSufficient", uint(1), 2000.0).Return(3000.0, nil)
	ledger.On("GetWalletByUserID", uint(2)).Return(&models.Wallet{UserID: 2}, nil)
	ledger.On("CreditBalance", uint(2), 2000.0).Return(2000.0, nil)
	ledger.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.UserID == 1 &&
			tx.Type == models.TransactionTypeDebit &&
			tx.Status == models.TransactionStatusSuccessful &&
			tx.CounterpartyID != nil && *tx.CounterpartyID == 2 &&
			tx.CounterpartyEmail == "bola@example.com"
	})).Return(nil).Once()
	ledger.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.UserID == 2 &&
			tx.Type == models.TransactionTypeCredit &&
			tx.Status == models.TransactionStatusSuccessful &&
			tx.CounterpartyID != nil && *tx.CounterpartyID == 1 &&
			tx.CounterpartyEmail == "ada@example.com"
	})).Return(nil).Once()
	cache.On("InvalidateWallet", uint(1)).Return(nil)
	cache.On("InvalidateWallet", uint(2)).Return(nil)
	notifier.On("Dispatch", mock.MatchedBy(func(e notification.Event) bool {
		done, ok := e.(notification.TransferCompleted)
		return ok && done.Amount == 2000.0 && done.Sender.ID == 1 && done.Recipient.ID == 2
	})).Return()

	result, err := svc.Transfer(context.Background(), 1, "bola@example.com", 2000, "1234")
	assert.NoError(t, err)
	assert.Equal(t, 3000.0, result.NewBalance)
	ledger.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransfer_LazyRecipientWallet(t *testing.T) {
	sender, recipient := testUsers()

	ledger, users, pins, cache, notifier, svc := newTestService()
	pins.On("Verify", uint(1), "1234").Return(nil)
	users.On("GetByID", uint(1)).Return(sender, nil)
	users.On("GetByEmail", "bola@example.com").Return(recipient, nil)
	ledger.On("ExecuteInTransaction", mock.Anything).Return(nil)
	ledger.On("DebitIfSufficient", uint(1), 100.0).Return(400.0, nil)
	ledger.On("GetWalletByUserID", uint(2)).Return(nil, repositories.ErrWalletNotFound)
	ledger.On("CreateWallet", mock.MatchedBy(func(w *models.Wallet) bool {
		return w.UserID == 2 && w.Currency == "NGN"
	})).Return(nil)
	ledger.On("CreditBalance", uint(2), 100.0).Return(100.0, nil)
	ledger.On("CreateTransaction", mock.Anything).Return(nil)
	cache.On("InvalidateWallet", mock.Anything).Return(nil)
	notifier.On("Dispatch", mock.Anything).Return()

	result, err := svc.Transfer(context.Background(), 1, "bola@example.com", 100, "1234")
	assert.NoError(t, err)
	assert.Equal(t, 400.0, result.NewBalance)
	ledger.AssertExpectations(t)
}
