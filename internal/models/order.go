package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order - центральная сущность workflow. Никогда не удаляется: терминальные
// статусы (completed/cancelled) хранятся как история.
type Order struct {
	BaseModel
	CustomerID  string  `gorm:"type:uuid;not null;index"`
	CreatorID   string  `gorm:"type:uuid;not null;index"`
	Title       string  `gorm:"not null"`
	Description string  `gorm:"not null"`
	Budget      float64 `gorm:"not null"`
	Deadline    *time.Time
	// Ссылки на референсы заказчика, порядок значим.
	ReferenceImages datatypes.JSON `gorm:"type:jsonb"`
	Status          OrderStatus    `gorm:"type:varchar(20);not null;default:'requested';index"`

	// Relations
	Customer *User     `gorm:"foreignKey:CustomerID"`
	Creator  *User     `gorm:"foreignKey:CreatorID"`
	Messages []Message `gorm:"foreignKey:OrderID"`
	Review   *Review   `gorm:"foreignKey:OrderID"`
}

// Participant сообщает, является ли пользователь стороной заказа.
func (o *Order) Participant(userID string) bool {
	return o.CustomerID == userID || o.CreatorID == userID
}

// SideOf возвращает роль пользователя по отношению к заказу.
func (o *Order) SideOf(userID string) (UserRole, bool) {
	switch userID {
	case o.CustomerID:
		return UserRoleCustomer, true
	case o.CreatorID:
		return UserRoleCreator, true
	}
	return "", false
}
