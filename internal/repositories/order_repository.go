package repositories

import (
	"errors"

	"handwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusConflict - CAS-обновление статуса не применилось: заказ уже не
	// в ожидаемом статусе. Конкурирующий переход успел раньше.
	ErrStatusConflict = errors.New("order status conflict")
)

type OrderRepository interface {
	Create(db *gorm.DB, order *models.Order) error
	FindByID(db *gorm.DB, id string) (*models.Order, error)
	FindByIDWithDetails(db *gorm.DB, id string) (*models.Order, error)
	// FindByUser - заказы, где пользователь является заказчиком или мастером,
	// свежие по updated_at сверху.
	FindByUser(db *gorm.DB, userID string) ([]models.Order, error)
	// UpdateStatusFrom - единственный путь смены статуса заказа. Сравнение
	// с ожидаемым статусом и запись выполняются одним UPDATE, поэтому из
	// конкурирующих переходов выигрывает ровно один.
	UpdateStatusFrom(db *gorm.DB, orderID string, from, to models.OrderStatus) error
}

type OrderRepositoryImpl struct{}

func NewOrderRepository() OrderRepository {
	return &OrderRepositoryImpl{}
}

func (r *OrderRepositoryImpl) Create(db *gorm.DB, order *models.Order) error {
	return db.Create(order).Error
}

func (r *OrderRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := db.First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindByIDWithDetails(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Customer").Preload("Customer.Profile").
		Preload("Creator").Preload("Creator.Profile").
		Preload("Review").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Customer").Preload("Creator").
		Where("customer_id = ? OR creator_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepositoryImpl) UpdateStatusFrom(db *gorm.DB, orderID string, from, to models.OrderStatus) error {
	result := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо заказа нет, либо статус уже сменился.
		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		return ErrStatusConflict
	}
	return nil
}
