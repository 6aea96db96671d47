package repositories

import (
	"errors"
	"time"

	"handwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("payment transaction not found")

type PaymentRepository interface {
	Create(db *gorm.DB, tx *models.PaymentTransaction) error
	FindByInvoiceID(db *gorm.DB, invoiceID string) (*models.PaymentTransaction, error)
	// MarkPaid переводит pending-транзакцию в paid. CAS по статусу: повторный
	// callback по уже оплаченной транзакции не применяется.
	MarkPaid(db *gorm.DB, id string, paidAt time.Time) error
	// HasPaidForOrder - есть ли у заказа подтвержденная оплата. Это проверка,
	// которой гейт пускает заказ в работу.
	HasPaidForOrder(db *gorm.DB, orderID string) (bool, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, tx *models.PaymentTransaction) error {
	return db.Create(tx).Error
}

func (r *PaymentRepositoryImpl) FindByInvoiceID(db *gorm.DB, invoiceID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := db.First(&tx, "invoice_id = ?", invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepositoryImpl) MarkPaid(db *gorm.DB, id string, paidAt time.Time) error {
	result := db.Model(&models.PaymentTransaction{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":  models.PaymentStatusPaid,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) HasPaidForOrder(db *gorm.DB, orderID string) (bool, error) {
	var count int64
	err := db.Model(&models.PaymentTransaction{}).
		Where("order_id = ? AND status = ?", orderID, models.PaymentStatusPaid).
		Count(&count).Error
	return count > 0, err
}
