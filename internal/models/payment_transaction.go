package models

import "time"

// PaymentTransaction фиксирует попытку оплаты заказа через внешний шлюз.
type PaymentTransaction struct {
	BaseModel
	OrderID   string        `gorm:"type:uuid;not null;index"`
	PayerID   string        `gorm:"type:uuid;not null;index"`
	Amount    float64       `gorm:"not null"`
	Currency  string        `gorm:"type:varchar(10);default:'USD'"`
	Status    PaymentStatus `gorm:"type:varchar(20);default:'pending'"`
	InvoiceID string        `gorm:"index"`
	PaidAt    *time.Time
}
