package repository

import (
	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IUserRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.User, error)
	GetByEmail(db *gorm.DB, email string) (*domain.User, error)
	GetByGoogleID(db *gorm.DB, googleId string) (*domain.User, error)
	Create(db *gorm.DB, entity *domain.User) (*domain.User, error)
	Update(db *gorm.DB, entity *domain.User) error
	GetWithPasskeys(db *gorm.DB, userId uint) (*domain.User, error)
	UpdateWebAuthnHandle(db *gorm.DB, userId uint, handle []byte) error
}

type UserRepository struct {
}

func NewUserRepository() IUserRepository {
	return &UserRepository{}
}

func (u *UserRepository) GetByID(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) GetByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) GetByGoogleID(db *gorm.DB, googleId string) (*domain.User, error) {
	var user domain.User
	err := db.Where("google_id = ?", googleId).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) Create(db *gorm.DB, entity *domain.User) (*domain.User, error) {
	return entity, db.Create(entity).Error
}

func (u *UserRepository) Update(db *gorm.DB, entity *domain.User) error {
	return db.Save(entity).Error
}

func (u *UserRepository) GetWithPasskeys(db *gorm.DB, userId uint) (*domain.User, error) {
	var user domain.User
	err := db.Preload("Passkeys").First(&user, userId).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) UpdateWebAuthnHandle(db *gorm.DB, userId uint, handle []byte) error {
	return db.Model(&domain.User{}).
		Where("id = ?", userId).
		Update("web_authn_user_handle", handle).Error
}
