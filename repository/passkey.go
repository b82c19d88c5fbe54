package repository

import (
	"time"

	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IPasskeyRepository interface {
	GetAllByUser(db *gorm.DB, userId uint) ([]domain.Passkey, error)
	GetByUserAndCredentialID(db *gorm.DB, userId uint, credentialId []byte) (*domain.Passkey, error)
	Create(db *gorm.DB, entity *domain.Passkey) error
	UpdateAfterLogin(db *gorm.DB, id uint, signCount uint32, backupState bool, lastUsedAt time.Time) error
}

type PasskeyRepository struct {
}

func NewPasskeyRepository() IPasskeyRepository {
	return &PasskeyRepository{}
}

func (p *PasskeyRepository) GetAllByUser(db *gorm.DB, userId uint) ([]domain.Passkey, error) {
	var passkeys []domain.Passkey
	if err := db.Where("user_id = ?", userId).Find(&passkeys).Error; err != nil {
		return nil, err
	}
	return passkeys, nil
}

// GetByUserAndCredentialID is scoped by owner on purpose: a credential id
// belonging to another user must come back as not found.
func (p *PasskeyRepository) GetByUserAndCredentialID(db *gorm.DB, userId uint, credentialId []byte) (*domain.Passkey, error) {
	var passkey domain.Passkey
	err := db.Where("user_id = ? AND credential_id = ?", userId, credentialId).First(&passkey).Error
	if err != nil {
		return nil, err
	}
	return &passkey, nil
}

func (p *PasskeyRepository) Create(db *gorm.DB, entity *domain.Passkey) error {
	return db.Create(entity).Error
}

func (p *PasskeyRepository) UpdateAfterLogin(db *gorm.DB, id uint, signCount uint32, backupState bool, lastUsedAt time.Time) error {
	return db.Model(&domain.Passkey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sign_count":   signCount,
			"backup_state": backupState,
			"last_used_at": lastUsedAt,
		}).Error
}
