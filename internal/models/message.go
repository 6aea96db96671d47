package models

// Message - запись журнала переписки по заказу. Append-only, никогда не
// редактируется и не удаляется.
type Message struct {
	BaseModel
	OrderID  string `gorm:"type:uuid;not null;index"`
	SenderID string `gorm:"type:uuid;not null;index"`
	Content  string `gorm:"not null"`

	// Relations
	Sender *User `gorm:"foreignKey:SenderID"`
}
