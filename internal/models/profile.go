package models

import "gorm.io/datatypes"

// Profile - анкета мастера. Rating и ReviewCount пишутся только агрегатором
// отзывов, остальное - самим мастером при онбординге.
type Profile struct {
	BaseModel
	UserID   string `gorm:"type:uuid;uniqueIndex;not null"`
	FullName string `gorm:"not null"`
	Bio      string
	Skills   datatypes.JSON `gorm:"type:jsonb"`
	Location string

	// Обязательные доказательства до выхода из pending_verification:
	// работы и фото инструментов/станков, каждое минимум по одной записи.
	Portfolio     datatypes.JSON `gorm:"type:jsonb"`
	MachinePhotos datatypes.JSON `gorm:"type:jsonb"`

	HourlyRate  float64 `gorm:"default:0"`
	Available   bool    `gorm:"default:false"`
	Rating      float64 `gorm:"default:0"`
	ReviewCount int64   `gorm:"default:0"`
}
