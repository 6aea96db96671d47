package repositories

import (
	"handwork_backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	// FindByOrder возвращает журнал сообщений заказа строго в порядке создания.
	FindByOrder(db *gorm.DB, orderID string) ([]models.Message, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByOrder(db *gorm.DB, orderID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Preload("Sender").Preload("Sender.Profile").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
