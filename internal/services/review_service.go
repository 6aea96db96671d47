package services

import (
	"context"
	"errors"

	"handwork_backend/internal/cache"
	"handwork_backend/internal/models"
	"handwork_backend/internal/repositories"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// SubmitReview - заказчик оставляет отзыв по завершённому заказу.
	// Один заказ - один отзыв, цель всегда мастер заказа.
	SubmitReview(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)

	GetOrderReview(db *gorm.DB, userID, orderID string) (*dto.ReviewResponse, error)
	GetCreatorReviews(db *gorm.DB, creatorID string) (*dto.CreatorReviewsResponse, error)
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	orderRepo  repositories.OrderRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, orderRepo repositories.OrderRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	order, err := s.orderRepo.FindByID(db, req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Отзыв пишет только заказчик этого заказа.
	if order.CustomerID != userID {
		if !order.Participant(userID) {
			return nil, apperrors.ErrNotOrderParticipant
		}
		return nil, apperrors.ErrInsufficientPermissions
	}

	if order.Status != models.OrderStatusCompleted {
		return nil, apperrors.ErrOrderNotCompleted
	}

	review := &models.Review{
		OrderID:  order.ID,
		AuthorID: userID,
		TargetID: order.CreatorID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	if err := s.reviewRepo.CreateWithAggregates(db, review); err != nil {
		if errors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, apperrors.InternalError(err)
	}

	// Рейтинг в каталоге изменился.
	cache.Invalidate(ctx, activeCreatorsCacheKey)

	return s.buildReviewResponse(review), nil
}

func (s *reviewService) GetOrderReview(db *gorm.DB, userID, orderID string) (*dto.ReviewResponse, error) {
	order, err := s.orderRepo.FindByID(db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !order.Participant(userID) {
		return nil, apperrors.ErrNotOrderParticipant
	}

	review, err := s.reviewRepo.FindByOrderID(db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildReviewResponse(review), nil
}

func (s *reviewService) GetCreatorReviews(db *gorm.DB, creatorID string) (*dto.CreatorReviewsResponse, error) {
	reviews, err := s.reviewRepo.FindByTarget(db, creatorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	aggregates, err := s.reviewRepo.GetCreatorAggregates(db, creatorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, s.buildReviewResponse(&reviews[i]))
	}

	return &dto.CreatorReviewsResponse{
		Reviews:       responses,
		AverageRating: aggregates.AverageRating,
		ReviewCount:   aggregates.ReviewCount,
	}, nil
}

func (s *reviewService) buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        review.ID,
		OrderID:   review.OrderID,
		AuthorID:  review.AuthorID,
		TargetID:  review.TargetID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		Author:    buildPartyInfo(review.Author),
	}
}
