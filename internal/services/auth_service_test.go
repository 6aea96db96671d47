package services

import (
	"testing"

	"handwork_backend/internal/auth"
	"handwork_backend/internal/models"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_Customer(t *testing.T) {
	t.Parallel()
	users := newFakeUserRepo()
	service := NewAuthService(users)

	resp, err := service.Register(nil, &dto.RegisterRequest{
		Email:    "buyer@test.local",
		Password: "secret1",
		Role:     "customer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	// Заказчик работает сразу.
	assert.Equal(t, models.UserStatusActive, resp.User.Status)

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.UserRoleCustomer, claims.Role)
}

func TestAuthService_Register_CreatorStartsUnverified(t *testing.T) {
	t.Parallel()
	users := newFakeUserRepo()
	service := NewAuthService(users)

	resp, err := service.Register(nil, &dto.RegisterRequest{
		Email:    "maker@test.local",
		Password: "secret1",
		Role:     "creator",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusPendingVerification, resp.User.Status)
}

func TestAuthService_Register_AdminRoleRejected(t *testing.T) {
	t.Parallel()
	service := NewAuthService(newFakeUserRepo())

	_, err := service.Register(nil, &dto.RegisterRequest{
		Email:    "evil@test.local",
		Password: "secret1",
		Role:     "admin",
	})
	assertAppCode(t, err, apperrors.CodeValidationFailed)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	service := NewAuthService(newFakeUserRepo())

	req := &dto.RegisterRequest{Email: "dup@test.local", Password: "secret1", Role: "customer"}
	_, err := service.Register(nil, req)
	require.NoError(t, err)

	_, err = service.Register(nil, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	t.Parallel()
	service := NewAuthService(newFakeUserRepo())

	_, err := service.Register(nil, &dto.RegisterRequest{
		Email:    "weak@test.local",
		Password: "12345",
		Role:     "customer",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	service := NewAuthService(newFakeUserRepo())

	_, err := service.Register(nil, &dto.RegisterRequest{
		Email:    "login@test.local",
		Password: "secret1",
		Role:     "customer",
	})
	require.NoError(t, err)

	resp, err := service.Login(nil, &dto.LoginRequest{Email: "login@test.local", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// Неверный пароль и несуществующий email дают одну и ту же ошибку.
	_, err = service.Login(nil, &dto.LoginRequest{Email: "login@test.local", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = service.Login(nil, &dto.LoginRequest{Email: "ghost@test.local", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
