package services

import (
	"context"
	"testing"

	"handwork_backend/internal/models"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type creatorFixture struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	service  CreatorService
}

func newCreatorFixture(t *testing.T) *creatorFixture {
	t.Helper()
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	return &creatorFixture{
		users:    users,
		profiles: profiles,
		service:  NewCreatorService(users, profiles),
	}
}

func (f *creatorFixture) newCreator(status models.UserStatus) *models.User {
	return f.users.add(&models.User{
		Email:  "maker@test.local",
		Role:   models.UserRoleCreator,
		Status: status,
	})
}

func validProfileRequest() *dto.SubmitProfileRequest {
	return &dto.SubmitProfileRequest{
		FullName:      "Анна Столярова",
		Bio:           "Мебель из массива на заказ",
		Skills:        []string{"wood", "finishing"},
		Portfolio:     []string{"https://img/1.jpg"},
		MachinePhotos: []string{"https://img/lathe.jpg"},
		HourlyRate:    25,
	}
}

func TestCreatorService_SubmitProfile_MovesToPendingApproval(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	creator := f.newCreator(models.UserStatusPendingVerification)

	resp, err := f.service.SubmitProfile(nil, creator.ID, validProfileRequest())
	require.NoError(t, err)
	assert.Equal(t, "Анна Столярова", resp.FullName)

	user, _ := f.users.FindByID(nil, creator.ID)
	assert.Equal(t, models.UserStatusPendingApproval, user.Status)
}

func TestCreatorService_SubmitProfile_RequiresEvidence(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	creator := f.newCreator(models.UserStatusPendingVerification)

	req := validProfileRequest()
	req.Portfolio = nil
	req.MachinePhotos = nil

	_, err := f.service.SubmitProfile(nil, creator.ID, req)
	assertAppCode(t, err, apperrors.CodeValidationFailed)

	// Статус не сдвинулся.
	user, _ := f.users.FindByID(nil, creator.ID)
	assert.Equal(t, models.UserStatusPendingVerification, user.Status)
}

func TestCreatorService_SubmitProfile_WrongState(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)

	for _, status := range []models.UserStatus{models.UserStatusPendingApproval, models.UserStatusActive} {
		creator := f.users.add(&models.User{
			Email:  "m-" + string(status) + "@test.local",
			Role:   models.UserRoleCreator,
			Status: status,
		})
		_, err := f.service.SubmitProfile(nil, creator.ID, validProfileRequest())
		assertAppCode(t, err, apperrors.CodeInvalidState)
	}
}

func TestCreatorService_SubmitProfile_CustomerForbidden(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	customer := f.users.add(&models.User{
		Email:  "cust@test.local",
		Role:   models.UserRoleCustomer,
		Status: models.UserStatusActive,
	})

	_, err := f.service.SubmitProfile(nil, customer.ID, validProfileRequest())
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestCreatorService_ApproveCreator(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	ctx := context.Background()
	creator := f.newCreator(models.UserStatusPendingApproval)
	f.profiles.profiles[creator.ID] = &models.Profile{UserID: creator.ID}

	require.NoError(t, f.service.ApproveCreator(ctx, nil, creator.ID))

	user, _ := f.users.FindByID(nil, creator.ID)
	assert.Equal(t, models.UserStatusActive, user.Status)
	// Одобрение открывает мастера для заказов.
	assert.True(t, f.profiles.profiles[creator.ID].Available)

	// Повторное одобрение уже активного мастера отклоняется.
	err := f.service.ApproveCreator(ctx, nil, creator.ID)
	assert.ErrorIs(t, err, apperrors.ErrCreatorNotApprovable)
}

func TestCreatorService_RejectCreator_BackToVerification(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	ctx := context.Background()
	creator := f.newCreator(models.UserStatusPendingApproval)

	require.NoError(t, f.service.RejectCreator(ctx, nil, creator.ID))

	user, _ := f.users.FindByID(nil, creator.ID)
	assert.Equal(t, models.UserStatusPendingVerification, user.Status)
}

func TestCreatorService_ApproveNonCreator(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	customer := f.users.add(&models.User{
		Email:  "cust@test.local",
		Role:   models.UserRoleCustomer,
		Status: models.UserStatusActive,
	})

	err := f.service.ApproveCreator(context.Background(), nil, customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrCreatorNotApprovable)
}

// Повторная подача после отклонения обновляет анкету, сохраняя рейтинг.
func TestCreatorService_ResubmitAfterReject(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	ctx := context.Background()
	creator := f.newCreator(models.UserStatusPendingVerification)

	_, err := f.service.SubmitProfile(nil, creator.ID, validProfileRequest())
	require.NoError(t, err)
	require.NoError(t, f.service.RejectCreator(ctx, nil, creator.ID))

	req := validProfileRequest()
	req.Bio = "Обновлённое описание мастерской"
	resp, err := f.service.SubmitProfile(nil, creator.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Обновлённое описание мастерской", resp.Bio)

	user, _ := f.users.FindByID(nil, creator.ID)
	assert.Equal(t, models.UserStatusPendingApproval, user.Status)
}

func TestCreatorService_ListActiveCreators(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)

	active := f.users.add(&models.User{
		Email: "a@test.local", Role: models.UserRoleCreator, Status: models.UserStatusActive,
		Profile: &models.Profile{FullName: "Активный"},
	})
	f.users.add(&models.User{
		Email: "p@test.local", Role: models.UserRoleCreator, Status: models.UserStatusPendingApproval,
	})
	f.users.add(&models.User{
		Email: "c@test.local", Role: models.UserRoleCustomer, Status: models.UserStatusActive,
	})
	// Активный мастер без анкеты в каталог не попадает.
	f.users.add(&models.User{
		Email: "ghost@test.local", Role: models.UserRoleCreator, Status: models.UserStatusActive,
	})

	resp, err := f.service.ListActiveCreators(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, active.ID, resp.Creators[0].ID)
}

func TestCreatorService_GetCreatorCard_OnlyActive(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	pending := f.users.add(&models.User{
		Email: "p@test.local", Role: models.UserRoleCreator, Status: models.UserStatusPendingApproval,
		Profile: &models.Profile{FullName: "Скрытый"},
	})

	_, err := f.service.GetCreatorCard(nil, pending.ID)
	assertAppCode(t, err, apperrors.CodeNotFound)
}

func TestCreatorService_SetAvailability(t *testing.T) {
	t.Parallel()
	f := newCreatorFixture(t)
	creator := f.newCreator(models.UserStatusActive)
	f.profiles.profiles[creator.ID] = &models.Profile{UserID: creator.ID, Available: true}

	require.NoError(t, f.service.SetAvailability(context.Background(), nil, creator.ID, false))
	assert.False(t, f.profiles.profiles[creator.ID].Available)
}
