package repositories

import (
	"errors"
	"fmt"
	"time"

	"paygo/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBeneficiaryNotFound = errors.New("beneficiary not found")

// BeneficiaryRepository manages a user's saved transfer recipients.
type BeneficiaryRepository interface {
	// UpsertFromTransfer records the recipient after a successful transfer,
	// bumping the transfer count when the pair already exists.
	UpsertFromTransfer(ownerID uint, recipient *models.User) error
	ListByOwner(ownerID uint, limit int) ([]models.Beneficiary, error)
	UpdateNickname(id, ownerID uint, nickname *string) (*models.Beneficiary, error)
	Delete(id, ownerID uint) error
}

type beneficiaryRepository struct {
	db *gorm.DB
}

func NewBeneficiaryRepository(db *gorm.DB) BeneficiaryRepository {
	return &beneficiaryRepository{db: db}
}

func (r *beneficiaryRepository) UpsertFromTransfer(ownerID uint, recipient *models.User) error {
	now := time.Now()
	beneficiary := models.Beneficiary{
		OwnerID:        ownerID,
		RecipientEmail: recipient.Email,
		RecipientName:  recipient.FullName(),
		RecipientID:    recipient.ID,
		TransferCount:  1,
		LastUsedAt:     now,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "recipient_email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"recipient_name": recipient.FullName(),
			"recipient_id":   recipient.ID,
			"transfer_count": gorm.Expr("beneficiaries.transfer_count + 1"),
			"last_used_at":   now,
			"updated_at":     now,
		}),
	}).Create(&beneficiary).Error
	if err != nil {
		return fmt.Errorf("failed to upsert beneficiary: %w", err)
	}
	return nil
}

func (r *beneficiaryRepository) ListByOwner(ownerID uint, limit int) ([]models.Beneficiary, error) {
	var list []models.Beneficiary
	err := r.db.Where("owner_id = ?", ownerID).
		Order("last_used_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list beneficiaries: %w", err)
	}
	return list, nil
}

func (r *beneficiaryRepository) UpdateNickname(id, ownerID uint, nickname *string) (*models.Beneficiary, error) {
	var beneficiary models.Beneficiary
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&beneficiary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("failed to get beneficiary: %w", err)
	}

	beneficiary.Nickname = nickname
	if err := r.db.Save(&beneficiary).Error; err != nil {
		return nil, fmt.Errorf("failed to update nickname: %w", err)
	}
	return &beneficiary, nil
}

func (r *beneficiaryRepository) Delete(id, ownerID uint) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Beneficiary{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete beneficiary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBeneficiaryNotFound
	}
	return nil
}
