package beneficiary

import (
	"testing"

	"paygo/internal/models"
	"paygo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBeneficiaries struct {
	mock.Mock
}

func (m *MockBeneficiaries) UpsertFromTransfer(ownerID uint, recipient *models.User) error {
	return m.Called(ownerID, recipient).Error(0)
}

func (m *MockBeneficiaries) ListByOwner(ownerID uint, limit int) ([]models.Beneficiary, error) {
	args := m.Called(ownerID, limit)
	if list, ok := args.Get(0).([]models.Beneficiary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBeneficiaries) UpdateNickname(id, ownerID uint, nickname *string) (*models.Beneficiary, error) {
	args := m.Called(id, ownerID, nickname)
	if b, ok := args.Get(0).(*models.Beneficiary); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBeneficiaries) Delete(id, ownerID uint) error {
	return m.Called(id, ownerID).Error(0)
}

func TestList(t *testing.T) {
	repo := new(MockBeneficiaries)
	saved := []models.Beneficiary{{OwnerID: 1, RecipientEmail: "bola@example.com"}}
	repo.On("ListByOwner", uint(1), 20).Return(saved, nil)

	list, err := NewService(repo).List(1, 20)
	assert.NoError(t, err)
	assert.Equal(t, saved, list)
	repo.AssertExpectations(t)
}

func TestRename(t *testing.T) {
	t.Run("row id and owner id reach the store in that order", func(t *testing.T) {
		repo := new(MockBeneficiaries)
		updated := &models.Beneficiary{OwnerID: 1, RecipientEmail: "bola@example.com"}
		repo.On("UpdateNickname", uint(42), uint(1), mock.MatchedBy(func(nick *string) bool {
			return nick != nil && *nick == "Bola"
		})).Return(updated, nil)

		got, err := NewService(repo).Rename(42, 1, "Bola")
		assert.NoError(t, err)
		assert.Equal(t, updated, got)
		repo.AssertExpectations(t)
	})

	t.Run("empty nickname clears the stored one", func(t *testing.T) {
		repo := new(MockBeneficiaries)
		repo.On("UpdateNickname", uint(42), uint(1), (*string)(nil)).
			Return(&models.Beneficiary{OwnerID: 1}, nil)

		_, err := NewService(repo).Rename(42, 1, "")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("someone else's row reads as not found", func(t *testing.T) {
		repo := new(MockBeneficiaries)
		repo.On("UpdateNickname", uint(42), uint(2), mock.Anything).
			Return(nil, repositories.ErrBeneficiaryNotFound)

		_, err := NewService(repo).Rename(42, 2, "Bola")
		assert.ErrorIs(t, err, repositories.ErrBeneficiaryNotFound)
	})
}

func TestRemove(t *testing.T) {
	t.Run("row id and owner id reach the store in that order", func(t *testing.T) {
		repo := new(MockBeneficiaries)
		repo.On("Delete", uint(42), uint(1)).Return(nil)

		err := NewService(repo).Remove(42, 1)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("someone else's row reads as not found", func(t *testing.T) {
		repo := new(MockBeneficiaries)
		repo.On("Delete", uint(42), uint(2)).Return(repositories.ErrBeneficiaryNotFound)

		err := NewService(repo).Remove(42, 2)
		assert.ErrorIs(t, err, repositories.ErrBeneficiaryNotFound)
	})
}
