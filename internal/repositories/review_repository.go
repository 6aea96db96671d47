package repositories

import (
	"errors"

	"handwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this order")
)

// CreatorAggregates - точный агрегат по всем отзывам мастера.
type CreatorAggregates struct {
	AverageRating float64
	ReviewCount   int64
}

type ReviewRepository interface {
	// CreateWithAggregates вставляет отзыв и в той же транзакции пересчитывает
	// рейтинг мастера полным проходом по всем его отзывам (AVG + COUNT в SQL),
	// записывая результат в анкету. Полный пересчет внутри одной транзакции
	// исключает дрейф агрегата при конкурентных вставках.
	CreateWithAggregates(db *gorm.DB, review *models.Review) error
	FindByOrderID(db *gorm.DB, orderID string) (*models.Review, error)
	FindByTarget(db *gorm.DB, targetID string) ([]models.Review, error)
	GetCreatorAggregates(db *gorm.DB, targetID string) (*CreatorAggregates, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) CreateWithAggregates(db *gorm.DB, review *models.Review) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		if err := tx.Where("order_id = ?", review.OrderID).First(&existing).Error; err == nil {
			return ErrReviewAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			// Гонку двух вставок по одному заказу ловит уникальный индекс.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrReviewAlreadyExists
			}
			return err
		}

		aggregates, err := r.GetCreatorAggregates(tx, review.TargetID)
		if err != nil {
			return err
		}

		return tx.Model(&models.Profile{}).
			Where("user_id = ?", review.TargetID).
			Updates(map[string]interface{}{
				"rating":       aggregates.AverageRating,
				"review_count": aggregates.ReviewCount,
			}).Error
	})
}

func (r *ReviewRepositoryImpl) FindByOrderID(db *gorm.DB, orderID string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("Author").Preload("Author.Profile").
		First(&review, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByTarget(db *gorm.DB, targetID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Author").Preload("Author.Profile").
		Where("target_id = ?", targetID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) GetCreatorAggregates(db *gorm.DB, targetID string) (*CreatorAggregates, error) {
	var aggregates CreatorAggregates
	err := db.Model(&models.Review{}).
		Where("target_id = ?", targetID).
		Select("COALESCE(AVG(rating), 0) as average_rating, COUNT(*) as review_count").
		Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}
	return &aggregates, nil
}
