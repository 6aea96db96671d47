package repositories

import (
	"errors"

	"handwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error
	// UpdateStatusFrom - CAS-переход статуса: применяется только если текущий
	// статус равен from. Возвращает ErrUserNotFound, если переход не случился.
	UpdateStatusFrom(db *gorm.DB, userID string, from, to models.UserStatus) error
	// FindCreatorsByStatus возвращает мастеров в указанном статусе вместе с анкетой.
	FindCreatorsByStatus(db *gorm.DB, status models.UserStatus) ([]models.User, error)
	FindByIDWithProfile(db *gorm.DB, id string) (*models.User, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStatusFrom(db *gorm.DB, userID string, from, to models.UserStatus) error {
	result := db.Model(&models.User{}).
		Where("id = ? AND status = ?", userID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindCreatorsByStatus(db *gorm.DB, status models.UserStatus) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Profile").
		Where("role = ? AND status = ?", models.UserRoleCreator, status).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindByIDWithProfile(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
