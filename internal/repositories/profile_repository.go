package repositories

import (
	"errors"

	"handwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	Update(db *gorm.DB, profile *models.Profile) error
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	SetAvailable(db *gorm.DB, userID string, available bool) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	var existing models.Profile
	if err := db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.Profile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) SetAvailable(db *gorm.DB, userID string, available bool) error {
	result := db.Model(&models.Profile{}).Where("user_id = ?", userID).Update("available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
