package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(30);default:'pending_verification'"`

	// Relations
	Profile *Profile `gorm:"foreignKey:UserID"`
}
