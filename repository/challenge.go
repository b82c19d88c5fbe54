package repository

import (
	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IChallengeRepository interface {
	Create(db *gorm.DB, entity *domain.Challenge) error
	GetLatestByUser(db *gorm.DB, userId uint) (*domain.Challenge, error)
	DeleteByUser(db *gorm.DB, userId uint) error
}

type ChallengeRepository struct {
}

func NewChallengeRepository() IChallengeRepository {
	return &ChallengeRepository{}
}

func (c *ChallengeRepository) Create(db *gorm.DB, entity *domain.Challenge) error {
	return db.Create(entity).Error
}

// GetLatestByUser returns the most recently issued challenge for the
// user. Older rows are implicitly retired; verification never considers
// them.
func (c *ChallengeRepository) GetLatestByUser(db *gorm.DB, userId uint) (*domain.Challenge, error) {
	var challenge domain.Challenge
	err := db.Where("user_id = ?", userId).
		Order("created_at DESC").
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// DeleteByUser consumes every outstanding challenge for the user after a
// verification succeeds.
func (c *ChallengeRepository) DeleteByUser(db *gorm.DB, userId uint) error {
	return db.Where("user_id = ?", userId).Delete(&domain.Challenge{}).Error
}
