// Package beneficiary exposes the saved-recipient list built up from
// completed transfers.
package beneficiary

import (
	"paygo/internal/models"
	"paygo/internal/repositories"
)

type Service interface {
	List(ownerID uint, limit int) ([]models.Beneficiary, error)
	Rename(beneficiaryID, ownerID uint, nickname string) (*models.Beneficiary, error)
	Remove(beneficiaryID, ownerID uint) error
}

type service struct {
	beneficiaries repositories.BeneficiaryRepository
}

func NewService(beneficiaries repositories.BeneficiaryRepository) Service {
	return &service{beneficiaries: beneficiaries}
}

func (s *service) List(ownerID uint, limit int) ([]models.Beneficiary, error) {
	return s.beneficiaries.ListByOwner(ownerID, limit)
}

func (s *service) Rename(beneficiaryID, ownerID uint, nickname string) (*models.Beneficiary, error) {
	var nick *string
	if nickname != "" {
		nick = &nickname
	}
	return s.beneficiaries.UpdateNickname(beneficiaryID, ownerID, nick)
}

func (s *service) Remove(beneficiaryID, ownerID uint) error {
	return s.beneficiaries.Delete(beneficiaryID, ownerID)
}
