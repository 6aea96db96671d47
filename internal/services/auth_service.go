package services

import (
	"errors"

	"handwork_backend/internal/auth"
	"handwork_backend/internal/models"
	"handwork_backend/internal/repositories"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role, ok := models.ParseUserRole(req.Role)
	if !ok || role == models.UserRoleAdmin {
		return nil, apperrors.NewBadRequestError("role must be customer or creator")
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Заказчик работает сразу, мастер начинает путь верификации.
	status := models.UserStatusActive
	if role == models.UserRoleCreator {
		status = models.UserStatusPendingVerification
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User: dto.UserDTO{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			Status:    user.Status,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
