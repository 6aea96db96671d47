package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"handwork_backend/internal/cache"
	"handwork_backend/internal/models"
	"handwork_backend/internal/repositories"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Ключ каталога активных мастеров в Redis. Сбрасывается при любом событии,
// меняющем состав или содержимое каталога.
const activeCreatorsCacheKey = "creators:active"

const activeCreatorsCacheTTL = 5 * time.Minute

type CreatorService interface {
	// SubmitProfile - мастер подаёт анкету с доказательствами (портфолио,
	// фото инструментов). Успешная подача переводит его на модерацию.
	SubmitProfile(db *gorm.DB, userID string, req *dto.SubmitProfileRequest) (*dto.ProfileResponse, error)

	// ApproveCreator / RejectCreator - решения модератора по заявке.
	// Отклонение возвращает мастера на доработку анкеты.
	ApproveCreator(ctx context.Context, db *gorm.DB, creatorID string) error
	RejectCreator(ctx context.Context, db *gorm.DB, creatorID string) error

	ListPendingCreators(db *gorm.DB) (*dto.CreatorListResponse, error)
	ListActiveCreators(ctx context.Context, db *gorm.DB) (*dto.CreatorListResponse, error)
	GetCreatorCard(db *gorm.DB, creatorID string) (*dto.CreatorCard, error)
	GetMyProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	SetAvailability(ctx context.Context, db *gorm.DB, userID string, available bool) error
}

type creatorService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewCreatorService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) CreatorService {
	return &creatorService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *creatorService) SubmitProfile(db *gorm.DB, userID string, req *dto.SubmitProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Role != models.UserRoleCreator {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if user.Status != models.UserStatusPendingVerification {
		return nil, apperrors.New(apperrors.CodeInvalidState, "profile",
			"Profile can only be submitted while awaiting verification", http.StatusConflict)
	}

	// Валидатор уже проверил min=1, но доказательства настолько принципиальны,
	// что проверяем ещё раз на уровне бизнес-логики.
	missing := map[string]string{}
	if len(req.Portfolio) == 0 {
		missing["portfolio"] = "at least one portfolio item is required"
	}
	if len(req.MachinePhotos) == 0 {
		missing["machine_photos"] = "at least one machine photo is required"
	}
	if len(missing) > 0 {
		return nil, apperrors.ErrInvalidProfile(missing)
	}

	profile := &models.Profile{
		UserID:        userID,
		FullName:      req.FullName,
		Bio:           req.Bio,
		Skills:        stringsToJSON(req.Skills),
		Location:      req.Location,
		Portfolio:     stringsToJSON(req.Portfolio),
		MachinePhotos: stringsToJSON(req.MachinePhotos),
		HourlyRate:    req.HourlyRate,
	}

	if err := s.profileRepo.Create(db, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileAlreadyExists) {
			// Повторная подача после отклонения: анкета обновляется.
			existing, findErr := s.profileRepo.FindByUserID(db, userID)
			if findErr != nil {
				return nil, apperrors.InternalError(findErr)
			}
			profile.ID = existing.ID
			profile.Rating = existing.Rating
			profile.ReviewCount = existing.ReviewCount
			if saveErr := s.profileRepo.Update(db, profile); saveErr != nil {
				return nil, apperrors.InternalError(saveErr)
			}
		} else {
			return nil, apperrors.InternalError(err)
		}
	}

	// pending_verification -> pending_approval. CAS защищает от двойной подачи.
	if err := s.userRepo.UpdateStatusFrom(db, userID,
		models.UserStatusPendingVerification, models.UserStatusPendingApproval); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildProfileResponse(profile), nil
}

func (s *creatorService) ApproveCreator(ctx context.Context, db *gorm.DB, creatorID string) error {
	if err := s.requirePendingCreator(db, creatorID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateStatusFrom(db, creatorID,
		models.UserStatusPendingApproval, models.UserStatusActive); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrCreatorNotApprovable
		}
		return apperrors.InternalError(err)
	}

	// Одобренный мастер сразу открыт для заказов.
	if err := s.profileRepo.SetAvailable(db, creatorID, true); err != nil {
		return apperrors.InternalError(err)
	}

	cache.Invalidate(ctx, activeCreatorsCacheKey)
	return nil
}

func (s *creatorService) RejectCreator(ctx context.Context, db *gorm.DB, creatorID string) error {
	if err := s.requirePendingCreator(db, creatorID); err != nil {
		return err
	}

	// Отклонение возвращает на шаг верификации: мастер дорабатывает анкету
	// и подаёт её снова.
	if err := s.userRepo.UpdateStatusFrom(db, creatorID,
		models.UserStatusPendingApproval, models.UserStatusPendingVerification); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrCreatorNotApprovable
		}
		return apperrors.InternalError(err)
	}

	cache.Invalidate(ctx, activeCreatorsCacheKey)
	return nil
}

func (s *creatorService) requirePendingCreator(db *gorm.DB, creatorID string) error {
	user, err := s.userRepo.FindByID(db, creatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleCreator {
		return apperrors.ErrCreatorNotApprovable
	}
	if user.Status != models.UserStatusPendingApproval {
		return apperrors.ErrCreatorNotApprovable
	}
	return nil
}

func (s *creatorService) ListPendingCreators(db *gorm.DB) (*dto.CreatorListResponse, error) {
	users, err := s.userRepo.FindCreatorsByStatus(db, models.UserStatusPendingApproval)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.buildCreatorList(users), nil
}

func (s *creatorService) ListActiveCreators(ctx context.Context, db *gorm.DB) (*dto.CreatorListResponse, error) {
	var resp dto.CreatorListResponse
	err := cache.CacheAside(ctx, activeCreatorsCacheKey, &resp, activeCreatorsCacheTTL, func() error {
		users, err := s.userRepo.FindCreatorsByStatus(db, models.UserStatusActive)
		if err != nil {
			return err
		}
		resp = *s.buildCreatorList(users)
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &resp, nil
}

func (s *creatorService) GetCreatorCard(db *gorm.DB, creatorID string) (*dto.CreatorCard, error) {
	user, err := s.userRepo.FindByIDWithProfile(db, creatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Публичная карточка есть только у активного мастера.
	if user.Role != models.UserRoleCreator || user.Status != models.UserStatusActive || user.Profile == nil {
		return nil, apperrors.ErrNotFound(repositories.ErrUserNotFound)
	}

	return s.buildCreatorCard(user), nil
}

func (s *creatorService) GetMyProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildProfileResponse(profile), nil
}

func (s *creatorService) SetAvailability(ctx context.Context, db *gorm.DB, userID string, available bool) error {
	if err := s.profileRepo.SetAvailable(db, userID, available); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	cache.Invalidate(ctx, activeCreatorsCacheKey)
	return nil
}

// ---------------- Helpers ----------------

func (s *creatorService) buildProfileResponse(profile *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserID:        profile.UserID,
		FullName:      profile.FullName,
		Bio:           profile.Bio,
		Skills:        jsonToStrings(profile.Skills),
		Location:      profile.Location,
		Portfolio:     jsonToStrings(profile.Portfolio),
		MachinePhotos: jsonToStrings(profile.MachinePhotos),
		HourlyRate:    profile.HourlyRate,
		Available:     profile.Available,
		Rating:        profile.Rating,
		ReviewCount:   profile.ReviewCount,
	}
}

func (s *creatorService) buildCreatorCard(user *models.User) *dto.CreatorCard {
	card := &dto.CreatorCard{ID: user.ID}
	if p := user.Profile; p != nil {
		card.FullName = p.FullName
		card.Bio = p.Bio
		card.Skills = jsonToStrings(p.Skills)
		card.Location = p.Location
		card.Portfolio = jsonToStrings(p.Portfolio)
		card.HourlyRate = p.HourlyRate
		card.Available = p.Available
		card.Rating = p.Rating
		card.ReviewCount = p.ReviewCount
	}
	return card
}

func (s *creatorService) buildCreatorList(users []models.User) *dto.CreatorListResponse {
	cards := make([]*dto.CreatorCard, 0, len(users))
	for i := range users {
		// В каталоге только мастера с анкетой.
		if users[i].Profile == nil {
			continue
		}
		cards = append(cards, s.buildCreatorCard(&users[i]))
	}
	return &dto.CreatorListResponse{
		Creators: cards,
		Total:    int64(len(cards)),
	}
}
