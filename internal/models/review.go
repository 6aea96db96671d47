package models

// Review - единственный отзыв по завершённому заказу. Автор всегда заказчик,
// цель всегда мастер заказа. Уникальный индекс по OrderID гарантирует
// не более одного отзыва на заказ.
type Review struct {
	BaseModel
	OrderID  string `gorm:"type:uuid;uniqueIndex;not null"`
	AuthorID string `gorm:"type:uuid;not null;index"`
	TargetID string `gorm:"type:uuid;not null;index"`
	Rating   int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment  string

	// Relations
	Author *User `gorm:"foreignKey:AuthorID"`
	Target *User `gorm:"foreignKey:TargetID"`
}
