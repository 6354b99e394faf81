package funding

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"paygo/internal/models"
	"paygo/internal/repositories"
	"paygo/internal/services/notification"
	"paygo/internal/services/paystack"

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

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Initialize(ctx context.Context, email string, amountKobo int64) (*paystack.InitResult, error) {
	args := m.Called(email, amountKobo)
	if r, ok := args.Get(0).(*paystack.InitResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error) {
	args := m.Called(reference)
	if r, ok := args.Get(0).(*paystack.VerifyResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) ValidateSignature(rawBody []byte, signature string) bool {
	return m.Called(rawBody, signature).Bool(0)
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

func newTestService() (*MockLedger, *MockUsers, *MockGateway, *MockCache, *MockNotifier, Service) {
	ledger := new(MockLedger)
	users := new(MockUsers)
	gateway := new(MockGateway)
	cache := new(MockCache)
	notifier := new(MockNotifier)
	svc := NewService(ledger, users, gateway, cache, notifier)
	return ledger, users, gateway, cache, notifier, svc
}

func TestInitFunding(t *testing.T) {
	user := &models.User{Email: "ada@example.com"}
	user.ID = 1

	t.Run("amount below minimum", func(t *testing.T) {
		_, _, _, _, _, svc := newTestService()

		_, err := svc.InitFunding(context.Background(), 1, 50)
		assert.ErrorIs(t, err, ErrAmountTooLow)
	})

	t.Run("pending funding blocks a new init", func(t *testing.T) {
		ledger, _, _, _, _, svc := newTestService()
		ledger.On("HasPendingFunding", uint(1)).Return(true, nil)

		_, err := svc.InitFunding(context.Background(), 1, 500)
		assert.ErrorIs(t, err, ErrPendingFundingExists)
		ledger.AssertExpectations(t)
	})

	t.Run("gateway failure leaves nothing persisted", func(t *testing.T) {
		ledger, users, gateway, _, _, svc := newTestService()
		ledger.On("HasPendingFunding", uint(1)).Return(false, nil)
		users.On("GetByID", uint(1)).Return(user, nil)
		gateway.On("Initialize", "ada@example.com", int64(50000)).Return(nil, paystack.ErrGatewayError)

		_, err := svc.InitFunding(context.Background(), 1, 500)
		assert.ErrorIs(t, err, paystack.ErrGatewayError)
		ledger.AssertNotCalled(t, "CreateTransaction", mock.Anything)
	})

	t.Run("successful init records a pending credit in kobo", func(t *testing.T) {
		ledger, users, gateway, _, _, svc := newTestService()
		ledger.On("HasPendingFunding", uint(1)).Return(false, nil)
		users.On("GetByID", uint(1)).Return(user, nil)
		gateway.On("Initialize", "ada@example.com", int64(25050)).Return(&paystack.InitResult{
			AuthorizationURL: "https://checkout.paystack.com/abc",
			Reference:        "ref-123",
		}, nil)
		ledger.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.UserID == 1 &&
				tx.Type == models.TransactionTypeCredit &&
				tx.Status == models.TransactionStatusPending &&
				tx.Amount == 250.50 &&
				tx.Reference != nil && *tx.Reference == "ref-123"
		})).Return(nil)

		result, err := svc.InitFunding(context.Background(), 1, 250.50)
		assert.NoError(t, err)
		assert.Equal(t, "ref-123", result.Reference)
		assert.Equal(t, "https://checkout.paystack.com/abc", result.AuthorizationURL)
		ledger.AssertExpectations(t)
	})
}

func TestHandleWebhook(t *testing.T) {
	reference := "ref-123"
	pendingTx := &models.Transaction{
		ID:        7,
		UserID:    1,
		Type:      models.TransactionTypeCredit,
		Amount:    500,
		Status:    models.TransactionStatusPending,
		Reference: &reference,
	}
	user := &models.User{Email: "ada@example.com"}
	user.ID = 1

	chargeBody, _ := json.Marshal(map[string]interface{}{
		"event": "charge.success",
		"data":  map[string]interface{}{"reference": reference, "amount": 50000, "status": "success"},
	})

	t.Run("invalid signature is rejected before parsing", func(t *testing.T) {
		_, _, gateway, _, _, svc := newTestService()
		gateway.On("ValidateSignature", chargeBody, "bad").Return(false)

		_, err := svc.HandleWebhook(context.Background(), chargeBody, "bad")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("irrelevant events are acknowledged and ignored", func(t *testing.T) {
		ledger, _, gateway, _, _, svc := newTestService()
		body, _ := json.Marshal(map[string]interface{}{"event": "transfer.success"})
		gateway.On("ValidateSignature", body, "sig").Return(true)

		result, err := svc.HandleWebhook(context.Background(), body, "sig")
		assert.NoError(t, err)
		assert.Nil(t, result)
		ledger.AssertNotCalled(t, "GetTransactionByReference", mock.Anything)
	})

	t.Run("first settlement credits the wallet once", func(t *testing.T) {
		ledger, users, gateway, cache, notifier, svc := newTestService()
		gateway.On("ValidateSignature", chargeBody, "sig").Return(true)
		ledger.On("GetTransactionByReference", reference).Return(pendingTx, nil)
		ledger.On("ExecuteInTransaction", mock.Anything).Return(nil)
		ledger.On("MarkTransactionSuccessful", reference).Return(true, nil)
		ledger.On("CreditBalance", uint(1), 500.0).Return(500.0, nil)
		cache.On("InvalidateWallet", uint(1)).Return(nil)
		users.On("GetByID", uint(1)).Return(user, nil)
		notifier.On("Dispatch", mock.MatchedBy(func(e notification.Event) bool {
			funded, ok := e.(notification.WalletFunded)
			return ok && funded.Amount == 500.0 && funded.Reference == reference
		})).Return()

		result, err := svc.HandleWebhook(context.Background(), chargeBody, "sig")
		assert.NoError(t, err)
		assert.True(t, result.Credited)
		assert.Equal(t, 500.0, result.NewBalance)
		ledger.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("replayed settlement is a benign no-op", func(t *testing.T) {
		ledger, _, gateway, cache, notifier, svc := newTestService()
		gateway.On("ValidateSignature", chargeBody, "sig").Return(true)
		ledger.On("GetTransactionByReference", reference).Return(pendingTx, nil)
		ledger.On("ExecuteInTransaction", mock.Anything).Return(nil)
		ledger.On("MarkTransactionSuccessful", reference).Return(false, nil)

		result, err := svc.HandleWebhook(context.Background(), chargeBody, "sig")
		assert.NoError(t, err)
		assert.False(t, result.Credited)
		ledger.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "InvalidateWallet", mock.Anything)
		notifier.AssertNotCalled(t, "Dispatch", mock.Anything)
	})

	t.Run("unknown reference", func(t *testing.T) {
		ledger, _, gateway, _, _, svc := newTestService()
		gateway.On("ValidateSignature", chargeBody, "sig").Return(true)
		ledger.On("GetTransactionByReference", reference).Return(nil, repositories.ErrTransactionNotFound)

		_, err := svc.HandleWebhook(context.Background(), chargeBody, "sig")
		assert.ErrorIs(t, err, ErrFundingNotFound)
	})
}

func TestVerifyFunding(t *testing.T) {
	reference := "ref-123"
	pendingTx := &models.Transaction{
		ID:        7,
		UserID:    1,
		Amount:    500,
		Status:    models.TransactionStatusPending,
		Reference: &reference,
	}
	user := &models.User{Email: "ada@example.com"}
	user.ID = 1

	t.Run("another user's reference reads as not found", func(t *testing.T) {
		ledger, _, _, _, _, svc := newTestService()
		ledger.On("GetTransactionByReference", reference).Return(pendingTx, nil)

		_, err := svc.VerifyFunding(context.Background(), 99, reference)
		assert.ErrorIs(t, err, ErrFundingNotFound)
	})

	t.Run("gateway reports failure", func(t *testing.T) {
		ledger, _, gateway, _, _, svc := newTestService()
		ledger.On("GetTransactionByReference", reference).Return(pendingTx, nil)
		gateway.On("Verify", reference).Return(&paystack.VerifyResult{Status: "abandoned"}, nil)

		_, err := svc.VerifyFunding(context.Background(), 1, reference)
		assert.ErrorIs(t, err, ErrPaymentNotSuccessful)
	})

	t.Run("verified charge settles with the gateway amount", func(t *testing.T) {
		ledger, users, gateway, cache, notifier, svc := newTestService()
		ledger.On("GetTransactionByReference", reference).Return(pendingTx, nil)
		gateway.On("Verify", reference).Return(&paystack.VerifyResult{
			Status:     "success",
			Reference:  reference,
			AmountKobo: 50000,
		}, nil)
		ledger.On("ExecuteInTransaction", mock.Anything).Return(nil)
		ledger.On("MarkTransactionSuccessful", reference).Return(true, nil)
		ledger.On("CreditBalance", uint(1), 500.0).Return(1500.0, nil)
		cache.On("InvalidateWallet", uint(1)).Return(nil)
		users.On("GetByID", uint(1)).Return(user, nil)
		notifier.On("Dispatch", mock.Anything).Return()

		result, err := svc.VerifyFunding(context.Background(), 1, reference)
		assert.NoError(t, err)
		assert.True(t, result.Credited)
		assert.Equal(t, 500.0, result.Amount)
		assert.Equal(t, 1500.0, result.NewBalance)
	})
}
